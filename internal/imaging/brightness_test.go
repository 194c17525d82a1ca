package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestAdjustBrightness_Zero(t *testing.T) {
	img := createPatternImage(10, 10)
	if got := AdjustBrightness(img, 0); got != image.Image(img) {
		t.Error("delta 0 should return the input image")
	}
}

func TestAdjustBrightness(t *testing.T) {
	tests := []struct {
		name  string
		in    color.NRGBA
		delta int
		want  color.NRGBA
		tol   int
	}{
		{"gray up", color.NRGBA{100, 100, 100, 255}, 50, color.NRGBA{150, 150, 150, 255}, 0},
		{"gray down clamps", color.NRGBA{30, 30, 30, 255}, -100, color.NRGBA{0, 0, 0, 255}, 0},
		{"white saturates", color.NRGBA{200, 200, 200, 255}, 255, color.NRGBA{255, 255, 255, 255}, 0},
		{"red keeps hue", color.NRGBA{100, 0, 0, 255}, 100, color.NRGBA{200, 0, 0, 255}, 1},
		{"alpha preserved", color.NRGBA{100, 100, 100, 77}, 10, color.NRGBA{110, 110, 110, 77}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
			for i := 0; i < 4; i++ {
				img.SetNRGBA(i%2, i/2, tt.in)
			}

			out := AdjustBrightness(img, tt.delta)
			got := color.NRGBAModel.Convert(out.At(1, 1)).(color.NRGBA)
			if abs(int(got.R)-int(tt.want.R)) > tt.tol ||
				abs(int(got.G)-int(tt.want.G)) > tt.tol ||
				abs(int(got.B)-int(tt.want.B)) > tt.tol ||
				got.A != tt.want.A {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdjustBrightness_PreservesBounds(t *testing.T) {
	img := createPatternImage(7, 5)
	out := AdjustBrightness(img, 20)
	if out.Bounds() != img.Bounds() {
		t.Errorf("bounds: got %v, want %v", out.Bounds(), img.Bounds())
	}
}
