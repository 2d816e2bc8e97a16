// Command churon loads ONNX models and runs inference from the command line.
//
// The ONNX Runtime shared library is resolved from --library, falling back to
// the CHURON_ONNXRUNTIME_LIB environment variable, then to the platform
// default name on the system search path.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrchypark/churon"
)

var (
	flagLibrary   string
	flagProviders []string
	flagVerbose   bool
)

func main() {
	root := &cobra.Command{
		Use:           "churon",
		Short:         "Run ONNX model inference",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if flagVerbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().StringVar(&flagLibrary, "library", "", "path to the onnxruntime shared library")
	root.PersistentFlags().StringSliceVar(&flagProviders, "providers", nil, "execution providers in fallback order (cpu, cuda, tensorrt, directml, onednn, coreml)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newInspectCommand(), newRunCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// sessionOptions assembles the churon options shared by the subcommands.
func sessionOptions() ([]churon.Option, error) {
	var opts []churon.Option

	library := flagLibrary
	if library == "" {
		library = os.Getenv("CHURON_ONNXRUNTIME_LIB")
	}
	if library != "" {
		opts = append(opts, churon.WithLibraryPath(library))
	}

	if len(flagProviders) > 0 {
		providers := make([]churon.Provider, 0, len(flagProviders))
		for _, s := range flagProviders {
			p, err := churon.ParseProvider(s)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		}
		opts = append(opts, churon.WithProviders(providers...))
	}

	if flagVerbose {
		opts = append(opts, churon.WithHooks(churon.NewSlogHook(nil)))
	}
	return opts, nil
}
