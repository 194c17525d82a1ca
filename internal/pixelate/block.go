package pixelate

import (
	"image"
	"math"
	"slices"
)

// RGB is the representative color a reducer produces for a block.
type RGB struct {
	R, G, B uint8
}

// Gray returns an RGB with all three channels set to v.
func Gray(v uint8) RGB {
	return RGB{R: v, G: v, B: v}
}

// Block is a read-only rectangle of RGB pixels.
//
// Pix holds Width*Height interleaved R,G,B triples in row-major order.
type Block struct {
	Width  int
	Height int
	Pix    []uint8
}

// Len returns the number of pixels in the block.
func (b Block) Len() int {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return b.Width * b.Height
}

// NewBlock returns a block of the given size with every pixel set to c.
func NewBlock(width, height int, c RGB) Block {
	pix := make([]uint8, 0, width*height*3)
	for i := 0; i < width*height; i++ {
		pix = append(pix, c.R, c.G, c.B)
	}
	return Block{Width: width, Height: height, Pix: pix}
}

// BlockFromImage copies the pixels of rect out of an NRGBA image, dropping
// alpha. rect must lie inside src.Rect.
func BlockFromImage(src *image.NRGBA, rect image.Rectangle) Block {
	w, h := rect.Dx(), rect.Dy()
	pix := make([]uint8, 0, w*h*3)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		off := src.PixOffset(rect.Min.X, y)
		for x := 0; x < w; x++ {
			pix = append(pix, src.Pix[off], src.Pix[off+1], src.Pix[off+2])
			off += 4
		}
	}
	return Block{Width: w, Height: h, Pix: pix}
}

// channels splits the block into per-channel float slices.
func (b Block) channels() (r, g, bl []float64) {
	n := b.Len()
	r = make([]float64, n)
	g = make([]float64, n)
	bl = make([]float64, n)
	for i := 0; i < n; i++ {
		r[i] = float64(b.Pix[i*3])
		g[i] = float64(b.Pix[i*3+1])
		bl[i] = float64(b.Pix[i*3+2])
	}
	return r, g, bl
}

// values returns every channel value of the block as one flat slice.
func (b Block) values() []float64 {
	n := b.Len() * 3
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = float64(b.Pix[i])
	}
	return out
}

// median returns the middle value of xs, averaging the two central values
// when len(xs) is even. xs is not modified.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// trunc8 truncates v toward zero and clamps it into [0,255].
func trunc8(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// luma is the ITU-R BT.601 weighting 0.299R + 0.587G + 0.114B. Integer
// weights keep R=G=B inputs exact, so gray blocks map onto themselves.
func luma(r, g, b float64) float64 {
	return (299*r + 587*g + 114*b) / 1000
}
