package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// AdjustBrightness shifts the HSV value channel of every pixel by delta.
//
// The value channel is handled on the 0-255 scale and clamped after the
// shift, so a delta of +255 drives every pixel to full value without
// touching hue or saturation. Alpha is preserved. A delta of 0 returns img
// itself.
func AdjustBrightness(img image.Image, delta int) image.Image {
	if delta == 0 {
		return img
	}

	src := imaging.Clone(img)
	dst := image.NewNRGBA(src.Rect)
	for i := 0; i+3 < len(src.Pix); i += 4 {
		h, s, v := unit(src.Pix[i], src.Pix[i+1], src.Pix[i+2]).Hsv()
		v8 := int(Clamp8(v*255)) + delta
		if v8 < 0 {
			v8 = 0
		} else if v8 > 255 {
			v8 = 255
		}
		r, g, b := colorful.Hsv(h, s, float64(v8)/255).Clamped().RGB255()
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = r, g, b, src.Pix[i+3]
	}
	return dst
}
