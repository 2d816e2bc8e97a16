package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrchypark/churon"
	"github.com/mrchypark/churon/engine"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect MODEL",
		Short: "Print a model's inputs, outputs, and metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := sessionOptions()
			if err != nil {
				return err
			}
			session, err := churon.Open(args[0], opts...)
			if err != nil {
				return err
			}
			defer session.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Model: %s\n", session.ModelPath())
			fmt.Fprintf(out, "Providers: %s\n", strings.Join(session.ActiveProviders(), ", "))

			if md, err := session.Metadata(); err == nil && md != nil {
				if md.ProducerName != "" {
					fmt.Fprintf(out, "Producer: %s\n", md.ProducerName)
				}
				if md.GraphName != "" {
					fmt.Fprintf(out, "Graph: %s\n", md.GraphName)
				}
				if md.Description != "" {
					fmt.Fprintf(out, "Description: %s\n", md.Description)
				}
				if md.Version != 0 {
					fmt.Fprintf(out, "Version: %d\n", md.Version)
				}
				for k, v := range md.Custom {
					fmt.Fprintf(out, "Custom %s: %s\n", k, v)
				}
			}

			fmt.Fprintln(out, "Inputs:")
			printDescriptors(out, session.InputInfo())
			fmt.Fprintln(out, "Outputs:")
			printDescriptors(out, session.OutputInfo())
			return nil
		},
	}
}

func printDescriptors(out io.Writer, descriptors []churon.TensorDescriptor) {
	for _, d := range descriptors {
		dims := make([]string, len(d.Shape))
		for i, dim := range d.Shape {
			if dim == engine.DynamicDim {
				dims[i] = "?"
			} else {
				dims[i] = fmt.Sprintf("%d", dim)
			}
		}
		fmt.Fprintf(out, "  %s: %s [%s]\n", d.Name, d.DataType, strings.Join(dims, ", "))
	}
}
