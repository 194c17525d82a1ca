package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-pixelate/internal/matrix"
	"github.com/ironsheep/image-pixelate/internal/pixelate"
)

var methodsCmd = &cobra.Command{
	Use:   "methods [mode]",
	Short: "List averaging methods per mode and the export formats",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMethods,
}

func init() {
	rootCmd.AddCommand(methodsCmd)
}

func runMethods(cmd *cobra.Command, args []string) error {
	modes := pixelate.Modes()
	if len(args) == 1 {
		mode, err := pixelate.ParseMode(args[0])
		if err != nil {
			return err
		}
		modes = []pixelate.Mode{mode}
	}

	out := cmd.OutOrStdout()
	for _, mode := range modes {
		def := pixelate.DefaultMethod(mode)
		fmt.Fprintf(out, "%s:\n", mode)
		for _, m := range pixelate.Methods(mode) {
			marker := ""
			if m == def {
				marker = " (default)"
			}
			fmt.Fprintf(out, "  %s%s\n", m, marker)
		}
	}

	if len(args) == 0 {
		fmt.Fprintf(out, "\nJSON formats: %v\n", matrix.JSONFormats())
		fmt.Fprintf(out, "Text formats: %v\n", matrix.TextFormats())
	}
	return nil
}
