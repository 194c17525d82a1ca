package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ironsheep/image-pixelate/internal/output"
	"github.com/ironsheep/image-pixelate/internal/pixelate"
)

// resetFlags restores every flag of cmd to its default so tests can share
// the package-level commands.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func createTestImageFile(t *testing.T, dir string, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestConfigFromFlags(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantMode   pixelate.Mode
		wantMethod pixelate.Method
	}{
		{"defaults", nil, pixelate.ModeColor, pixelate.MethodMEAV},
		{"grayscale switches default", []string{"--mode-grayscale"}, pixelate.ModeGrayscale, pixelate.MethodGrayWAV},
		{"black-white switches default", []string{"--mode-black-white"}, pixelate.ModeBlackWhite, pixelate.MethodBLWTTC},
		{"black-white wins", []string{"--mode-grayscale", "--mode-black-white"}, pixelate.ModeBlackWhite, pixelate.MethodBLWTTC},
		{"explicit method", []string{"--mode-grayscale", "--averaging", "gray-mb"}, pixelate.ModeGrayscale, pixelate.MethodGrayMB},
		{"legacy alias", []string{"--averating", "AMAC"}, pixelate.ModeColor, pixelate.MethodAMAC},
		{"unknown method kept for fallback", []string{"--averaging", "sepia"}, pixelate.ModeColor, pixelate.Method("sepia")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(rootCmd)
			if err := rootCmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}

			cfg, err := configFromFlags(rootCmd)
			if err != nil {
				t.Fatalf("configFromFlags failed: %v", err)
			}
			if cfg.Mode != tt.wantMode || cfg.Method != tt.wantMethod {
				t.Errorf("got %s/%s, want %s/%s", cfg.Mode, cfg.Method, tt.wantMode, tt.wantMethod)
			}
		})
	}
}

func TestConfigFromFlags_Resize(t *testing.T) {
	resetFlags(rootCmd)
	if err := rootCmd.ParseFlags([]string{"--zoom", "-0.5", "--point-w", "4", "--point-h", "6", "--bright", "-20"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	cfg, err := configFromFlags(rootCmd)
	if err != nil {
		t.Fatalf("configFromFlags failed: %v", err)
	}
	if cfg.Resize.Zoom == nil || *cfg.Resize.Zoom != -0.5 {
		t.Errorf("zoom: got %v, want -0.5", cfg.Resize.Zoom)
	}
	if cfg.BlockWidth != 4 || cfg.BlockHeight != 6 || cfg.Brightness != -20 {
		t.Errorf("got blocks %dx%d brightness %d", cfg.BlockWidth, cfg.BlockHeight, cfg.Brightness)
	}

	resetFlags(rootCmd)
	cfg, _ = configFromFlags(rootCmd)
	if cfg.Resize.Zoom != nil {
		t.Error("zoom should be nil when the flag is not given")
	}
}

func TestConfigFromFlags_Strict(t *testing.T) {
	resetFlags(rootCmd)
	if err := rootCmd.ParseFlags([]string{"--strict", "--mode-grayscale", "--averaging", "amac"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if _, err := configFromFlags(rootCmd); !errors.Is(err, pixelate.ErrMethodNotAllowed) {
		t.Errorf("got %v, want ErrMethodNotAllowed", err)
	}
}

func TestRunPixelate(t *testing.T) {
	dir := t.TempDir()
	input := createTestImageFile(t, dir, 20, 10, color.RGBA{255, 0, 0, 255})
	base := filepath.Join(dir, "out", "result")

	resetFlags(rootCmd)
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{input, "--out-name", base, "--point-w", "5", "--point-h", "5",
		"--matrix-json", "--matrix-txt", "sac", "--console"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	imagePath := base + ".png"
	if _, err := os.Stat(imagePath); err != nil {
		t.Fatalf("image not written: %v", err)
	}

	data, err := os.ReadFile(imagePath + ".json")
	if err != nil {
		t.Fatalf("json matrix not written: %v", err)
	}
	var doc struct {
		Width  int        `json:"width"`
		Height int        `json:"height"`
		Pixels [][]string `json:"pixels"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid json matrix: %v", err)
	}
	if doc.Width != 20 || doc.Height != 10 || doc.Pixels[0][0] != "255 0 0" {
		t.Errorf("json matrix: got %dx%d first %q", doc.Width, doc.Height, doc.Pixels[0][0])
	}

	txt, err := os.ReadFile(imagePath + ".txt")
	if err != nil {
		t.Fatalf("txt matrix not written: %v", err)
	}
	if lines := strings.Split(string(txt), "\n"); len(lines) != 10 || !strings.HasPrefix(lines[0], "R R") {
		t.Errorf("unexpected txt matrix:\n%s", txt)
	}

	out := stdout.String()
	for _, want := range []string{"Pixelated image saved to " + imagePath, "JSON matrix saved to", "TXT matrix saved to", "Console preview:", "🟥"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
}

func TestRunPixelate_Compressed(t *testing.T) {
	dir := t.TempDir()
	input := createTestImageFile(t, dir, 8, 8, color.RGBA{0, 0, 255, 255})
	base := filepath.Join(dir, "c")

	resetFlags(rootCmd)
	rootCmd.SetOut(&bytes.Buffer{})
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{input, "--out-name", base, "--matrix-json", "hex", "--compress"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	data, err := output.ReadFile(base + ".png.json.zst")
	if err != nil {
		t.Fatalf("compressed matrix not readable: %v", err)
	}
	if !strings.Contains(string(data), "#0000ff") {
		t.Errorf("unexpected matrix content:\n%s", data)
	}
}

func TestRunPixelate_BadFormat(t *testing.T) {
	dir := t.TempDir()
	input := createTestImageFile(t, dir, 4, 4, color.RGBA{0, 0, 0, 255})

	resetFlags(rootCmd)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)
	rootCmd.SetArgs([]string{input, "--out-name", filepath.Join(dir, "x"), "--matrix-txt", "cmyk"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for unsupported text format")
	}
	if _, err := os.Stat(filepath.Join(dir, "x.png")); !os.IsNotExist(err) {
		t.Error("no image should be written when a format is invalid")
	}
}

func TestRunPixelate_UnsavableType(t *testing.T) {
	dir := t.TempDir()

	resetFlags(rootCmd)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)
	// The input does not exist: the extension check must fail first.
	rootCmd.SetArgs([]string{filepath.Join(dir, "missing.png"), "--out-name", filepath.Join(dir, "x"), "--out-type", "webp"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for webp output")
	}
	if !strings.Contains(err.Error(), "encoder") {
		t.Errorf("error should come from the encoder check, got: %v", err)
	}
}

func TestDecodeCommand(t *testing.T) {
	dir := t.TempDir()
	input := createTestImageFile(t, dir, 6, 4, color.RGBA{10, 200, 30, 255})
	base := filepath.Join(dir, "m")

	resetFlags(rootCmd)
	resetFlags(decodeCmd)
	rootCmd.SetOut(&bytes.Buffer{})
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{input, "--out-name", base, "--matrix-json", "sla", "--compress"})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("pixelate failed: %v", err)
	}

	decoded := filepath.Join(dir, "out", "decoded.png")
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"decode", base + ".png.json.zst", "--format", "sla", "-o", decoded})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Image saved to "+decoded) {
		t.Errorf("unexpected output: %s", stdout.String())
	}

	f, err := os.Open(decoded)
	if err != nil {
		t.Fatalf("decoded image missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoded image is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
		t.Errorf("size: got %v, want 6x4", img.Bounds())
	}
	r, g, b, _ := img.At(5, 3).RGBA()
	if r>>8 != 10 || g>>8 != 200 || b>>8 != 30 {
		t.Errorf("pixel: got (%d,%d,%d), want (10,200,30)", r>>8, g>>8, b>>8)
	}
}

func TestDecodeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "m.json")
	if err := os.WriteFile(doc, []byte(`{"width":1099511627776,"height":1,"pixels":[[]]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"cmyk", []string{"decode", doc, "--format", "cmyk", "-o", filepath.Join(dir, "a.png")}},
		{"bad output type", []string{"decode", doc, "--format", "aoa", "-o", filepath.Join(dir, "a.webp")}},
		{"oversized", []string{"decode", doc, "--format", "aoa", "-o", filepath.Join(dir, "a.png")}},
		{"missing file", []string{"decode", filepath.Join(dir, "nope.json"), "-o", filepath.Join(dir, "a.png")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(decodeCmd)
			rootCmd.SetOut(&bytes.Buffer{})
			rootCmd.SetErr(&bytes.Buffer{})
			defer rootCmd.SetOut(nil)
			defer rootCmd.SetErr(nil)
			rootCmd.SetArgs(tt.args)
			defer rootCmd.SetArgs(nil)

			if err := rootCmd.Execute(); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "a.png")); !os.IsNotExist(err) {
		t.Error("no image should be written on failure")
	}
}

func TestMethodsCommand(t *testing.T) {
	var stdout bytes.Buffer
	methodsCmd.SetOut(&stdout)
	defer methodsCmd.SetOut(nil)

	if err := runMethods(methodsCmd, []string{"black-white"}); err != nil {
		t.Fatalf("runMethods failed: %v", err)
	}
	want := "black-white:\n  bin-tc\n  bin-mb\n  blwt\n  blwt-tc (default)\n"
	if stdout.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", stdout.String(), want)
	}

	if err := runMethods(methodsCmd, []string{"sepia"}); !errors.Is(err, pixelate.ErrUnknownMode) {
		t.Errorf("got %v, want ErrUnknownMode", err)
	}
}
