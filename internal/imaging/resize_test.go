package imaging

import (
	"errors"
	"image/color"
	"testing"
)

func zoom(z float64) *float64 { return &z }

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		spec   ResizeSpec
		wantW  int
		wantH  int
		wantOK bool
	}{
		{"no resize", 100, 50, ResizeSpec{}, 100, 50, false},
		{"both dimensions", 100, 50, ResizeSpec{Width: 30, Height: 70}, 30, 70, true},
		{"width only", 100, 50, ResizeSpec{Width: 40}, 40, 20, true},
		{"height only", 100, 50, ResizeSpec{Height: 10}, 20, 10, true},
		{"zoom in", 100, 50, ResizeSpec{Zoom: zoom(0.5)}, 150, 75, true},
		{"zoom out", 100, 100, ResizeSpec{Zoom: zoom(-0.5)}, 66, 66, true},
		{"zoom -1 halves", 100, 50, ResizeSpec{Zoom: zoom(-1)}, 50, 25, true},
		{"zoom zero", 100, 50, ResizeSpec{Zoom: zoom(0)}, 100, 50, true},
		{"zoom wins over dimensions", 100, 50, ResizeSpec{Width: 10, Zoom: zoom(1)}, 200, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, ok := TargetSize(tt.w, tt.h, tt.spec)
			if w != tt.wantW || h != tt.wantH || ok != tt.wantOK {
				t.Errorf("got %dx%d (%v), want %dx%d (%v)", w, h, ok, tt.wantW, tt.wantH, tt.wantOK)
			}
		})
	}
}

func TestResize(t *testing.T) {
	img := createInMemoryImage(100, 60, color.RGBA{10, 120, 200, 255})

	same, err := Resize(img, ResizeSpec{})
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if same != img {
		t.Error("zero spec should return the input image")
	}

	out, err := Resize(img, ResizeSpec{Width: 50})
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 50 || b.Dy() != 30 {
		t.Errorf("dimensions: got %dx%d, want 50x30", b.Dx(), b.Dy())
	}

	// A uniform image stays uniform under Lanczos
	r, g, b, _ := out.At(25, 15).RGBA()
	if abs(int(r>>8)-10) > 1 || abs(int(g>>8)-120) > 1 || abs(int(b>>8)-200) > 1 {
		t.Errorf("center pixel: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestResize_InvalidSize(t *testing.T) {
	img := createInMemoryImage(10, 1, color.White)

	if _, err := Resize(img, ResizeSpec{Width: 4}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("height 0: got %v, want ErrInvalidSize", err)
	}
	if _, err := Resize(img, ResizeSpec{Width: -5, Height: 5}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("negative width: got %v, want ErrInvalidSize", err)
	}
}
