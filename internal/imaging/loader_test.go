package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// writeSolidPNG writes a width x height PNG of a single color to dir/name.
func writeSolidPNG(t *testing.T, dir, name string, width, height int, c color.NRGBA) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := Save(path, createInMemoryImage(width, height, c)); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	path := writeSolidPNG(t, t.TempDir(), "red.png", 30, 20, color.NRGBA{255, 0, 0, 255})

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := first.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", b.Dx(), b.Dy())
	}

	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if first != second {
		t.Error("unchanged file should be served from the cache")
	}
}

func TestImageCache_Load_ReloadsChangedFile(t *testing.T) {
	cache := NewImageCache()
	dir := t.TempDir()
	path := writeSolidPNG(t, dir, "img.png", 10, 10, color.NRGBA{255, 0, 0, 255})

	before, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	writeSolidPNG(t, dir, "img.png", 12, 6, color.NRGBA{0, 0, 255, 255})
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	after, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load after change failed: %v", err)
	}
	if after == before {
		t.Fatal("changed file should be decoded again")
	}
	if b := after.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Errorf("dimensions: got %dx%d, want 12x6", b.Dx(), b.Dy())
	}
	if r, _, b, _ := after.At(0, 0).RGBA(); r != 0 || b>>8 != 255 {
		t.Errorf("pixel should be blue after reload, got r=%d b=%d", r>>8, b>>8)
	}
}

func TestImageCache_Load_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	cache := NewImageCache()
	for _, path := range []string{filepath.Join(dir, "missing.png"), garbage} {
		if _, err := cache.Load(path); err == nil {
			t.Errorf("Load(%s) should fail", filepath.Base(path))
		}
	}
	if len(cache.images) != 0 {
		t.Errorf("failed loads should not be cached, have %d entries", len(cache.images))
	}
}

func TestImageCache_ConcurrentLoad(t *testing.T) {
	cache := NewImageCache()
	path := writeSolidPNG(t, t.TempDir(), "gray.png", 50, 50, color.NRGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	results := make([]image.Image, 64)
	errs := make([]error, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Load(path)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if results[i].Bounds().Dx() != 50 {
			t.Errorf("load %d: width %d", i, results[i].Bounds().Dx())
		}
	}
}

func TestOpen_Formats(t *testing.T) {
	img := createPatternImage(40, 20)
	dir := t.TempDir()

	for _, ext := range []string{"png", "jpg", "gif", "bmp", "tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "pattern."+ext)
			if err := Save(path, img); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			decoded, err := Open(path)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if b := decoded.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
				t.Errorf("dimensions: got %dx%d, want 40x20", b.Dx(), b.Dy())
			}
		})
	}
}

func TestOpen_NonExistent(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Open should fail for a missing file")
	}
}
