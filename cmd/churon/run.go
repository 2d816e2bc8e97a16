package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrchypark/churon"
)

func newRunCommand() *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "run MODEL",
		Short: "Run inference with inputs from a YAML file",
		Long: `Run inference with inputs from a YAML file of the form:

  inputs:
    - name: x
      dtype: float32
      shape: [1, 3]
      data: [1.0, 2.0, 3.0]

dtype is one of float32, float64, int32, int64, bool, string.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := sessionOptions()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(inputFile)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
			values, err := parseInputs(raw)
			if err != nil {
				return err
			}

			session, err := churon.Open(args[0], opts...)
			if err != nil {
				return err
			}
			defer session.Close()

			outputs, err := session.RunValues(cmd.Context(), values)
			if err != nil {
				return err
			}
			return printOutputs(cmd.OutOrStdout(), outputs)
		},
	}
	cmd.Flags().StringVarP(&inputFile, "inputs", "i", "", "YAML file with named input tensors")
	cmd.MarkFlagRequired("inputs")
	return cmd
}
