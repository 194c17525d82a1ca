package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-pixelate/internal/imaging"
	"github.com/ironsheep/image-pixelate/internal/pixelate"
)

var paletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "Print the dominant colors of an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runPalette,
}

func init() {
	paletteCmd.Flags().IntP("count", "n", 5, "Number of colors to extract")
	paletteCmd.Flags().Int("point-w", 0, "Pixelate with this block width first")
	paletteCmd.Flags().Int("point-h", 0, "Pixelate with this block height first")
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	pointW, _ := cmd.Flags().GetInt("point-w")
	pointH, _ := cmd.Flags().GetInt("point-h")

	img, err := imaging.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	if pointW > 0 && pointH > 0 {
		img = pixelate.Pixelate(img, pointW, pointH, pixelate.MethodMEAV, pixelate.ModeColor)
	}

	result, err := imaging.DominantColors(img, count)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, c := range result.Colors {
		fmt.Fprintf(out, "%s  %5.1f%%  rgb(%d,%d,%d)  hsl(%d,%d%%,%d%%)\n",
			c.Hex, c.Percentage, c.RGB.R, c.RGB.G, c.RGB.B, c.HSL.H, c.HSL.S, c.HSL.L)
	}
	return nil
}
