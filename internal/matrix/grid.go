package matrix

import (
	"image"

	"github.com/disintegration/imaging"
)

// Grid is a row-major pixel grid with 3 (RGB) or 4 (RGBA) channels per
// pixel. Alpha, when present, is non-premultiplied.
type Grid struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// FromImage flattens img into a Grid. The grid has 4 channels only when the
// image reports itself as not fully opaque; pixelated images are opaque and
// always export as RGB.
func FromImage(img image.Image) Grid {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	channels := 3
	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		channels = 4
	}

	pix := make([]uint8, 0, w*h*channels)
	for i := 0; i+3 < len(src.Pix); i += 4 {
		pix = append(pix, src.Pix[i:i+channels]...)
	}
	return Grid{Width: w, Height: h, Channels: channels, Pix: pix}
}

// At returns the channel values of pixel (x, y).
func (g Grid) At(x, y int) []uint8 {
	off := (y*g.Width + x) * g.Channels
	return g.Pix[off : off+g.Channels]
}

// RGB returns the color channels of pixel (x, y), ignoring alpha.
func (g Grid) RGB(x, y int) (r, gr, b uint8) {
	p := g.At(x, y)
	return p[0], p[1], p[2]
}

// Image converts the grid back to an NRGBA image. RGB grids become fully
// opaque.
func (g Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i := 0; i < g.Width*g.Height; i++ {
		src := g.Pix[i*g.Channels : (i+1)*g.Channels]
		dst := img.Pix[i*4 : i*4+4]
		dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 255
		if g.Channels == 4 {
			dst[3] = src[3]
		}
	}
	return img
}
