package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-pixelate/internal/imaging"
	"github.com/ironsheep/image-pixelate/internal/matrix"
	"github.com/ironsheep/image-pixelate/internal/output"
	"github.com/ironsheep/image-pixelate/internal/pixelate"
)

func init() {
	f := rootCmd.Flags()
	f.String("averaging", string(pixelate.MethodMEAV), "Averaging method (see 'pixelate methods')")
	f.String("averating", string(pixelate.MethodMEAV), "Alias of --averaging")
	f.Int("width", 0, "Output image width in pixels")
	f.Int("height", 0, "Output image height in pixels")
	f.Float64("zoom", 0, "Zoom factor (positive to enlarge, negative to shrink)")
	f.Int("point-w", 10, "Block width in pixels")
	f.Int("point-h", 10, "Block height in pixels")
	f.Bool("mode-color", false, "Output in color mode")
	f.Bool("mode-grayscale", false, "Output in grayscale mode")
	f.Bool("mode-black-white", false, "Output in black and white mode")
	f.Int("bright", 0, "Brightness adjustment (-255 to 255)")
	f.String("out-prefix", "", "Prefix for the output filename (default \"pic_\")")
	f.String("out-name", "", "Output filename without extension")
	f.String("out-type", "", "Output file extension (default: input extension or png)")
	f.String("matrix-json", "", "Write a JSON matrix: aoa, sla, slo, b64, hex, rgb or cmyk")
	f.String("matrix-txt", "", "Write a text matrix: rgb, hex, ansi, sdd or sac")
	f.Bool("console", false, "Print a glyph preview to the console")
	f.Bool("truecolor", false, "Print the console preview in the terminal's own colors")
	f.Bool("compress", false, "Compress matrix files with zstd")
	f.Bool("strict", false, "Reject methods that do not belong to the selected mode")

	f.Lookup("matrix-json").NoOptDefVal = string(matrix.JSONRGB)
	f.MarkHidden("averating")
}

// modeFromFlags mirrors the precedence of the mode switches: black-white
// wins over grayscale, which wins over color.
func modeFromFlags(cmd *cobra.Command) pixelate.Mode {
	if bw, _ := cmd.Flags().GetBool("mode-black-white"); bw {
		return pixelate.ModeBlackWhite
	}
	if gray, _ := cmd.Flags().GetBool("mode-grayscale"); gray {
		return pixelate.ModeGrayscale
	}
	return pixelate.ModeColor
}

// configFromFlags builds the pipeline configuration from the command line.
func configFromFlags(cmd *cobra.Command) (pixelate.Config, error) {
	cfg := pixelate.DefaultConfig()
	cfg.Mode = modeFromFlags(cmd)

	method, _ := cmd.Flags().GetString("averaging")
	if !cmd.Flags().Changed("averaging") && cmd.Flags().Changed("averating") {
		method, _ = cmd.Flags().GetString("averating")
	}
	cfg.Method = pixelate.Method(method)
	if parsed, err := pixelate.ParseMethod(method); err == nil {
		cfg.Method = parsed
	}
	// meav is the color default; the other modes switch to their own.
	if cfg.Method == pixelate.MethodMEAV && cfg.Mode != pixelate.ModeColor {
		cfg.Method = pixelate.DefaultMethod(cfg.Mode)
	}

	cfg.BlockWidth, _ = cmd.Flags().GetInt("point-w")
	cfg.BlockHeight, _ = cmd.Flags().GetInt("point-h")
	cfg.Brightness, _ = cmd.Flags().GetInt("bright")
	cfg.Strict, _ = cmd.Flags().GetBool("strict")

	cfg.Resize.Width, _ = cmd.Flags().GetInt("width")
	cfg.Resize.Height, _ = cmd.Flags().GetInt("height")
	if cmd.Flags().Changed("zoom") {
		zoom, _ := cmd.Flags().GetFloat64("zoom")
		cfg.Resize.Zoom = &zoom
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// outputOptionsFromFlags collects the file naming flags.
func outputOptionsFromFlags(cmd *cobra.Command) output.Options {
	var opts output.Options
	opts.Name, _ = cmd.Flags().GetString("out-name")
	opts.Prefix, _ = cmd.Flags().GetString("out-prefix")
	opts.Type, _ = cmd.Flags().GetString("out-type")
	opts.Compress, _ = cmd.Flags().GetBool("compress")
	return opts
}

func runPixelate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}

	// Validate export formats before doing any work
	var jsonFormat matrix.JSONFormat
	if s, _ := cmd.Flags().GetString("matrix-json"); s != "" {
		if jsonFormat, err = matrix.ParseJSONFormat(s); err != nil {
			return err
		}
	}
	var textFormat matrix.TextFormat
	if s, _ := cmd.Flags().GetString("matrix-txt"); s != "" {
		if textFormat, err = matrix.ParseTextFormat(s); err != nil {
			return err
		}
	}

	opts := outputOptionsFromFlags(cmd)
	imagePath := output.Name(opts, inputPath, time.Now())
	if err := imaging.CheckSavable(imagePath); err != nil {
		return err
	}

	img, err := imaging.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	debugf("Loaded %s (%dx%d)", inputPath, img.Bounds().Dx(), img.Bounds().Dy())

	res, err := pixelate.Process(img, cfg)
	if err != nil {
		return err
	}
	if res.Fallback {
		log.Printf("Method %q is not available in %s mode, using %s", cfg.Method, cfg.Mode, res.Method)
	}
	debugf("Pixelated with %s/%s, blocks %dx%d", cfg.Mode, res.Method, cfg.BlockWidth, cfg.BlockHeight)

	out := cmd.OutOrStdout()
	if err := imaging.Save(imagePath, res.Image); err != nil {
		return err
	}
	fmt.Fprintf(out, "Pixelated image saved to %s\n", imagePath)

	if jsonFormat != "" {
		path := output.MatrixName(opts, imagePath, "json")
		err := output.WriteFile(path, opts.Compress, func(w io.Writer) error {
			return matrix.WriteJSON(w, res.Image, jsonFormat)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "JSON matrix saved to %s\n", path)
	}

	if textFormat != "" {
		path := output.MatrixName(opts, imagePath, "txt")
		err := output.WriteFile(path, opts.Compress, func(w io.Writer) error {
			_, err := io.WriteString(w, matrix.Text(res.Image, textFormat))
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "TXT matrix saved to %s\n", path)
	}

	if console, _ := cmd.Flags().GetBool("console"); console {
		fmt.Fprintln(out, "\nConsole preview:")
		if truecolor, _ := cmd.Flags().GetBool("truecolor"); truecolor {
			profile := termenv.NewOutput(os.Stdout).ColorProfile()
			return matrix.WriteTrueColorPreview(out, res.Image, profile)
		}
		return matrix.WritePreview(out, res.Image)
	}

	return nil
}
