package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidSize is returned when a resize request yields a non-positive
// dimension.
var ErrInvalidSize = errors.New("invalid target size")

// ResizeSpec selects how an image is resized before pixelation.
//
// Zoom and explicit dimensions are alternative strategies: when Zoom is set
// Width and Height are ignored. A zero Width or Height means "not given".
type ResizeSpec struct {
	Width  int      `json:"width,omitempty"`
	Height int      `json:"height,omitempty"`
	Zoom   *float64 `json:"zoom,omitempty"`
}

// TargetSize computes the dimensions an image of w x h is resized to.
//
// Sizing rules:
//   - Zoom z > 0 scales both dimensions by (1+z)
//   - Zoom z <= 0 divides both dimensions by (1-z), so -0.5 yields 2/3 size
//   - Width and Height both given: used as-is
//   - Only one given: the other follows the original aspect ratio
//
// All results are truncated toward zero. The boolean is false when the spec
// requests no resize.
func TargetSize(w, h int, spec ResizeSpec) (int, int, bool) {
	switch {
	case spec.Zoom != nil:
		z := *spec.Zoom
		if z > 0 {
			return int(float64(w) * (1 + z)), int(float64(h) * (1 + z)), true
		}
		return int(float64(w) / (1 - z)), int(float64(h) / (1 - z)), true
	case spec.Width != 0 && spec.Height != 0:
		return spec.Width, spec.Height, true
	case spec.Width != 0:
		ratio := float64(spec.Width) / float64(w)
		return spec.Width, int(float64(h) * ratio), true
	case spec.Height != 0:
		ratio := float64(spec.Height) / float64(h)
		return int(float64(w) * ratio), spec.Height, true
	}
	return w, h, false
}

// Resize applies spec to img using a Lanczos filter.
//
// The input image is returned unchanged when spec is zero.
//
// # Errors
//
//   - Returns ErrInvalidSize if the computed width or height is not positive
func Resize(img image.Image, spec ResizeSpec) (image.Image, error) {
	bounds := img.Bounds()
	w, h, ok := TargetSize(bounds.Dx(), bounds.Dy(), spec)
	if !ok {
		return img, nil
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d from %dx%d", ErrInvalidSize, w, h, bounds.Dx(), bounds.Dy())
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}
