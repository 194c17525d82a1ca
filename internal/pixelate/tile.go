package pixelate

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// Pixelate partitions img into blockWidth x blockHeight tiles starting at
// the top-left corner and paints every tile with the color its reducer
// selects for it.
//
// Tiles on the right and bottom edges are clipped to the image, so no pixel
// is dropped or padded. Block sizes below 1 are treated as 1. The method is
// resolved against mode with Resolve, falling back to the mode's default.
//
// The input is first normalized to 8-bit non-premultiplied RGBA: grayscale
// sources are expanded to three equal channels and alpha is ignored by the
// reducers. The result always has the same dimensions as img, bounds at the
// origin, and is fully opaque.
//
// Tiles are independent of one another; the row-major visiting order does
// not influence the result.
func Pixelate(img image.Image, blockWidth, blockHeight int, method Method, mode Mode) *image.NRGBA {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	reduce := ReducerFor(mode, method)
	for _, rect := range Grid(w, h, blockWidth, blockHeight) {
		fill(dst, rect, reduce(BlockFromImage(src, rect)))
	}
	return dst
}

// Grid returns the tile rectangles Pixelate visits for an image of the
// given size, in visiting order.
func Grid(width, height, blockWidth, blockHeight int) []image.Rectangle {
	blockWidth = max(blockWidth, 1)
	blockHeight = max(blockHeight, 1)
	var rects []image.Rectangle
	for y := 0; y < height; y += blockHeight {
		for x := 0; x < width; x += blockWidth {
			rects = append(rects, image.Rect(x, y, min(x+blockWidth, width), min(y+blockHeight, height)))
		}
	}
	return rects
}

func fill(dst *image.NRGBA, rect image.Rectangle, c RGB) {
	u := image.NewUniform(nrgba(c))
	draw.Draw(dst, rect, u, image.Point{}, draw.Src)
}
