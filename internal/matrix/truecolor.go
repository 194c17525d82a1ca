package matrix

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// WriteTrueColorPreview prints img to w with every pixel drawn as two full
// blocks in its own color. Colors are degraded to what profile supports and
// termenv.Ascii prints the bare blocks.
func WriteTrueColorPreview(w io.Writer, img image.Image, profile termenv.Profile) error {
	g := FromImage(img)
	var line strings.Builder
	for y := 0; y < g.Height; y++ {
		line.Reset()
		for x := 0; x < g.Width; x++ {
			if profile == termenv.Ascii {
				line.WriteString("██")
				continue
			}
			cell := termenv.String("██").Foreground(profile.Color(hexColor(g.RGB(x, y))))
			line.WriteString(cell.String())
		}
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
	}
	return nil
}
