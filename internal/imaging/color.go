package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorFrequency represents a palette color and its share of the image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB"
	Percentage float64  `json:"percentage"` // Share of the image (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components
	HSL        HSLColor `json:"hsl"`        // HSL representation
}

// DominantColorsResult contains the most representative colors in an image.
//
// Colors are sorted by weight in descending order (most common first).
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors extracts up to count representative colors from an image.
//
// Clustering is delegated to the dominantcolor package, which downsamples the
// image and runs k-means in RGB space. Weights are reported as percentages
// rounded to one decimal place. When clustering yields nothing the average
// color is reported at 100%.
//
// # Errors
//
//   - Returns error if count is not positive
//   - Returns error if the image has no pixels
func DominantColors(img image.Image, count int) (*DominantColorsResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("color count must be positive, got %d", count)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	found := dominantcolor.FindWeight(img, count)
	if len(found) == 0 {
		// Clustering found nothing usable; report the average color.
		avg := color.NRGBAModel.Convert(imaging.Resize(img, 1, 1, imaging.Box).At(0, 0)).(color.NRGBA)
		found = []dominantcolor.Color{{RGBA: color.RGBA{R: avg.R, G: avg.G, B: avg.B, A: 255}, Weight: 1}}
	}
	colors := make([]ColorFrequency, 0, len(found))
	for _, c := range found {
		colors = append(colors, ColorFrequency{
			Hex:        fmt.Sprintf("#%02X%02X%02X", c.RGBA.R, c.RGBA.G, c.RGBA.B),
			Percentage: math.Round(c.Weight*1000) / 10,
			RGB:        RGBColor{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B},
			HSL:        rgbToHSL(c.RGBA.R, c.RGBA.G, c.RGBA.B),
		})
	}

	return &DominantColorsResult{Colors: colors}, nil
}

// HSV8 converts an 8-bit RGB triple to the compact 8-bit HSV encoding used by
// common image libraries: H is stored as degrees/2 in [0,180), S and V are
// scaled to [0,255].
func HSV8(r, g, b uint8) (h, s, v uint8) {
	hf, sf, vf := unit(r, g, b).Hsv()
	hh := math.Round(hf / 2)
	if hh >= 180 {
		hh -= 180
	}
	return uint8(hh), Clamp8(sf * 255), Clamp8(vf * 255)
}

// RGBFromHSV8 is the inverse of HSV8.
func RGBFromHSV8(h, s, v uint8) (r, g, b uint8) {
	return colorful.Hsv(float64(h)*2, float64(s)/255, float64(v)/255).Clamped().RGB255()
}

// Lab8 converts an 8-bit RGB triple to the 8-bit CIE L*a*b* encoding used by
// common image libraries: L is scaled from [0,100] to [0,255] and a, b are
// offset by 128. The D65 white reference is used.
func Lab8(r, g, b uint8) (l, a, bb uint8) {
	lf, af, bf := unit(r, g, b).Lab()
	// go-colorful reports L in [0,1] and a, b in hundredths.
	return Clamp8(lf * 255), Clamp8(af*100 + 128), Clamp8(bf*100 + 128)
}

// RGBFromLab8 is the inverse of Lab8. Out-of-gamut results are clamped.
func RGBFromLab8(l, a, b uint8) (r, g, bb uint8) {
	c := colorful.Lab(float64(l)/255, (float64(a)-128)/100, (float64(b)-128)/100)
	return c.Clamped().RGB255()
}

// Clamp8 rounds v to the nearest integer and clamps it into [0,255].
func Clamp8(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}

func unit(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// rgbToHSL converts 8-bit RGB values to HSL color space.
//
// Returns HSLColor with H in 0-360 degrees, S and L in 0-100 percent.
func rgbToHSL(r, g, b uint8) HSLColor {
	h, s, l := unit(r, g, b).Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
