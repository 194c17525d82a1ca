package pixelate

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/image-pixelate/internal/imaging"
)

// Config describes one pixelation run.
type Config struct {
	// BlockWidth and BlockHeight are the tile size in pixels, at least 1.
	BlockWidth  int `json:"block_width"`
	BlockHeight int `json:"block_height"`

	// Method is the reduction method. It is resolved against Mode.
	Method Method `json:"method"`

	// Mode selects the reducer family.
	Mode Mode `json:"mode"`

	// Resize is applied before tiling.
	Resize imaging.ResizeSpec `json:"resize"`

	// Brightness is added to the HSV value channel before tiling.
	Brightness int `json:"brightness"`

	// Strict rejects methods outside Mode's set instead of falling back.
	Strict bool `json:"strict,omitempty"`
}

// DefaultConfig returns 10x10 blocks, color mode and median averaging.
func DefaultConfig() Config {
	return Config{
		BlockWidth:  10,
		BlockHeight: 10,
		Method:      MethodMEAV,
		Mode:        ModeColor,
	}
}

// Validate checks the configuration.
//
// Outside strict mode only the block size is checked: unknown modes run as
// color and unknown or mode-inappropriate methods fall back to the mode's
// default.
//
// # Errors
//
//   - Returns error if a block dimension is below 1
//   - Strict: returns ErrUnknownMode for an unrecognized mode
//   - Strict: returns ErrUnknownMethod for a method outside the catalog
//   - Strict: returns ErrMethodNotAllowed when Method is not in Mode's set
func (c Config) Validate() error {
	if c.BlockWidth < 1 || c.BlockHeight < 1 {
		return fmt.Errorf("block size must be at least 1x1, got %dx%d", c.BlockWidth, c.BlockHeight)
	}
	if !c.Strict {
		return nil
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if _, err := ParseMethod(string(c.Method)); err != nil {
		return err
	}
	if !Allowed(c.Mode, c.Method) {
		return fmt.Errorf("%w: %s does not accept %s (allowed: %v)", ErrMethodNotAllowed, c.Mode, c.Method, Methods(c.Mode))
	}
	return nil
}

// Result is the outcome of Process.
type Result struct {
	// Image is the pixelated image.
	Image *image.NRGBA

	// Method is the method that actually ran.
	Method Method

	// Fallback is true when the configured method was replaced by the mode's
	// default.
	Fallback bool
}

// Process validates cfg, applies the resize and brightness adapters and
// pixelates the result.
func Process(img image.Image, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resized, err := imaging.Resize(img, cfg.Resize)
	if err != nil {
		return nil, fmt.Errorf("failed to resize image: %w", err)
	}
	adjusted := imaging.AdjustBrightness(resized, cfg.Brightness)

	method, fallback := Resolve(cfg.Mode, cfg.Method)
	return &Result{
		Image:    Pixelate(adjusted, cfg.BlockWidth, cfg.BlockHeight, method, cfg.Mode),
		Method:   method,
		Fallback: fallback,
	}, nil
}

func nrgba(c RGB) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
