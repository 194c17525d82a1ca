// Package output names and writes the files produced by a pixelation run:
// the pixelated image and its optional JSON or text matrix documents.
package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// DefaultPrefix is used when neither a name nor a prefix is configured.
const DefaultPrefix = "pic_"

// timestampLayout renders as YYYYmmdd_HHMMSS.
const timestampLayout = "20060102_150405"

// Options controls where output files go.
type Options struct {
	// Name, when set, is used verbatim (plus extension) and wins over Prefix.
	// It may contain directories.
	Name string
	// Prefix is prepended to the input base name. It may contain directories.
	Prefix string
	// Type is the image extension without the dot, e.g. "png".
	Type string
	// Compress wraps matrix documents in zstd and appends ".zst".
	Compress bool
}

// Name returns the output image path for inputPath.
//
// With opts.Name the result is "<name>.<ext>". Otherwise it is
// "<prefix><base>_<YYYYmmdd_HHMMSS>.<ext>" where base is the input file
// name without extension and prefix defaults to "pic_". The extension comes
// from opts.Type, then the input's extension, then "png".
func Name(opts Options, inputPath string, now time.Time) string {
	ext := Extension(opts, inputPath)
	if opts.Name != "" {
		return opts.Name + "." + ext
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return fmt.Sprintf("%s%s_%s.%s", prefix, base, now.Format(timestampLayout), ext)
}

// Extension returns the output image extension, lowercased and without the
// leading dot.
func Extension(opts Options, inputPath string) string {
	if t := strings.TrimPrefix(strings.TrimSpace(opts.Type), "."); t != "" {
		return strings.ToLower(t)
	}
	if e := strings.TrimPrefix(filepath.Ext(inputPath), "."); e != "" {
		return strings.ToLower(e)
	}
	return "png"
}

// MatrixName returns the path of a matrix document written next to
// imagePath. kind is "json" or "txt".
func MatrixName(opts Options, imagePath, kind string) string {
	name := imagePath + "." + kind
	if opts.Compress {
		name += ".zst"
	}
	return name
}

// EnsureDir creates the parent directory of path if it is missing.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// WriteFile runs render against a buffer and writes the result to path,
// zstd-compressed when compress is set. The parent directory is created.
func WriteFile(path string, compress bool, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}

	data := buf.Bytes()
	if compress {
		var err error
		if data, err = Compress(data); err != nil {
			return err
		}
	}

	if err := EnsureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Compress encodes data as a single zstd frame.
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return out, nil
}

// ReadFile reads path, transparently decompressing ".zst" files.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".zst") {
		return Decompress(data)
	}
	return data, nil
}
