package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-pixelate/internal/imaging"
	"github.com/ironsheep/image-pixelate/internal/matrix"
	"github.com/ironsheep/image-pixelate/internal/output"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <matrix.json[.zst]>",
	Short: "Rebuild an image from a JSON matrix document",
	Long: `Rebuild an image from a JSON matrix written with --matrix-json.

The document's layout must be named with --format. Files ending in .zst are
decompressed first. Every layout except cmyk can be decoded.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringP("format", "f", string(matrix.JSONRGB), "JSON layout of the document")
	decodeCmd.Flags().StringP("output", "o", "", "Image file to write")
	decodeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	s, _ := cmd.Flags().GetString("format")
	format, err := matrix.ParseJSONFormat(s)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("output")
	if err := imaging.CheckSavable(outPath); err != nil {
		return err
	}

	data, err := output.ReadFile(args[0])
	if err != nil {
		return err
	}
	img, err := matrix.Decode(format, data)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", args[0], err)
	}
	debugf("Decoded %s matrix %dx%d", format, img.Rect.Dx(), img.Rect.Dy())

	if err := imaging.Save(outPath, img); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Image saved to %s\n", outPath)
	return nil
}
