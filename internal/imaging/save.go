package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-pixelate/internal/output"
)

// EncodedImage is an image serialized for transport in a JSON payload.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// CheckSavable returns the error Save would report for path's extension,
// without touching the filesystem.
func CheckSavable(path string) error {
	_, err := saveFormat(path)
	return err
}

func saveFormat(path string) (imaging.Format, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("failed to select encoder for %s: %w", path, err)
	}
	return format, nil
}

// Save encodes img to path, choosing the encoder from the file extension
// (jpg, jpeg, png, gif, tif, tiff, bmp). Missing parent directories are
// created.
//
// # Errors
//
//   - Returns error if the extension has no matching encoder
//   - Returns error if the directory or file cannot be created
func Save(path string, img image.Image) error {
	format, err := saveFormat(path)
	if err != nil {
		return err
	}
	if err := output.EnsureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := imaging.Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// EncodePNGBase64 encodes img as PNG and wraps it for JSON transport.
func EncodePNGBase64(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &EncodedImage{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
