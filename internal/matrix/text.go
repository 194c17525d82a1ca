package matrix

import (
	"fmt"
	"image"
	"io"
	"strings"
)

// TextFormat names a plain-text rendering.
type TextFormat string

// Supported text renderings.
const (
	TextRGB     TextFormat = "rgb"  // "r,g,b" cells separated by three spaces
	TextHex     TextFormat = "hex"  // "#rrggbb" cells
	TextANSI    TextFormat = "ansi" // colored square glyphs
	TextDensity TextFormat = "sdd"  // density ramp characters
	TextLetters TextFormat = "sac"  // one-letter primary codes
)

// TextFormats lists the text renderings in display order.
func TextFormats() []TextFormat {
	return []TextFormat{TextRGB, TextHex, TextANSI, TextDensity, TextLetters}
}

// ParseTextFormat validates a text rendering name.
func ParseTextFormat(s string) (TextFormat, error) {
	f := TextFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TextFormats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: text %q", ErrUnknownFormat, s)
}

// Text renders img in format, one line per pixel row, lines joined by "\n"
// without a trailing newline. The rgb, hex and sdd renderings start with a
// "# Size: ..." header line. An unrecognized format renders as rgb.
func Text(img image.Image, format TextFormat) string {
	g := FromImage(img)
	var lines []string

	switch format {
	case TextHex:
		lines = append(lines, fmt.Sprintf("# Size: %dx%d", g.Width, g.Height))
		lines = appendRows(lines, g, " ", hexColor)
	case TextANSI:
		lines = appendRows(lines, g, " ", Glyph)
	case TextDensity:
		lines = append(lines, sizeHeader(g))
		lines = appendRows(lines, g, " ", func(r, gr, b uint8) string {
			return string(Density(r, gr, b))
		})
	case TextLetters:
		lines = appendRows(lines, g, " ", Letter)
	default:
		lines = append(lines, sizeHeader(g))
		lines = appendRows(lines, g, "   ", func(r, gr, b uint8) string {
			return fmt.Sprintf("%d,%d,%d", r, gr, b)
		})
	}

	return strings.Join(lines, "\n")
}

// WritePreview prints the ansi rendering of img to w, one row per line.
func WritePreview(w io.Writer, img image.Image) error {
	g := FromImage(img)
	for _, line := range appendRows(nil, g, " ", Glyph) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
	}
	return nil
}

func sizeHeader(g Grid) string {
	return fmt.Sprintf("# Size: width=%d, height=%d", g.Width, g.Height)
}

func appendRows(lines []string, g Grid, sep string, cell func(r, g, b uint8) string) []string {
	cells := make([]string, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cells[x] = cell(g.RGB(x, y))
		}
		lines = append(lines, strings.Join(cells, sep))
	}
	return lines
}
