package matrix

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
)

// JSONFormat names a structured matrix layout.
type JSONFormat string

// Supported JSON layouts.
const (
	JSONNested  JSONFormat = "aoa"  // rows of [r,g,b(,a)] arrays
	JSONFlat    JSONFormat = "sla"  // one flat channel stream
	JSONObjects JSONFormat = "slo"  // one {x,y,r,g,b(,a)} object per pixel
	JSONBase64  JSONFormat = "b64"  // base64 of the raw byte stream
	JSONHex     JSONFormat = "hex"  // rows of "#rrggbb"
	JSONRGB     JSONFormat = "rgb"  // rows of "r g b"
	JSONCMYK    JSONFormat = "cmyk" // rows of "c m y k" percentages
)

var (
	// ErrUnknownFormat is returned for an unrecognized format tag.
	ErrUnknownFormat = errors.New("unknown matrix format")

	// ErrMalformedMatrix is returned when a document cannot be turned back
	// into an image.
	ErrMalformedMatrix = errors.New("malformed matrix document")
)

// JSONFormats lists the JSON layouts in display order.
func JSONFormats() []JSONFormat {
	return []JSONFormat{JSONNested, JSONFlat, JSONObjects, JSONBase64, JSONHex, JSONRGB, JSONCMYK}
}

// ParseJSONFormat validates a JSON layout name.
func ParseJSONFormat(s string) (JSONFormat, error) {
	f := JSONFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range JSONFormats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: json %q", ErrUnknownFormat, s)
}

// NestedDocument is the aoa layout.
type NestedDocument struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Pixels [][][]int `json:"pixels"`
}

// FlatDocument is the sla layout.
type FlatDocument struct {
	Width    int   `json:"width"`
	Height   int   `json:"height"`
	Channels int   `json:"channels"`
	Pixels   []int `json:"pixels"`
}

// PixelObject is one entry of the slo layout.
type PixelObject struct {
	X int  `json:"x"`
	Y int  `json:"y"`
	R int  `json:"r"`
	G int  `json:"g"`
	B int  `json:"b"`
	A *int `json:"a,omitempty"`
}

// ObjectDocument is the slo layout.
type ObjectDocument struct {
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Pixels []PixelObject `json:"pixels"`
}

// Base64Document is the b64 layout. Format is "RGB" or "RGBA".
type Base64Document struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Data   string `json:"data"`
}

// StringDocument is shared by the hex, rgb and cmyk layouts.
type StringDocument struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Pixels [][]string `json:"pixels"`
}

// JSON builds the document for format from img, visiting pixels in
// row-major order. An unrecognized format produces the rgb layout.
func JSON(img image.Image, format JSONFormat) any {
	g := FromImage(img)

	switch format {
	case JSONNested:
		rows := make([][][]int, g.Height)
		for y := range rows {
			rows[y] = make([][]int, g.Width)
			for x := range rows[y] {
				rows[y][x] = ints(g.At(x, y))
			}
		}
		return &NestedDocument{Width: g.Width, Height: g.Height, Pixels: rows}

	case JSONFlat:
		return &FlatDocument{Width: g.Width, Height: g.Height, Channels: g.Channels, Pixels: ints(g.Pix)}

	case JSONObjects:
		objs := make([]PixelObject, 0, g.Width*g.Height)
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				p := g.At(x, y)
				obj := PixelObject{X: x, Y: y, R: int(p[0]), G: int(p[1]), B: int(p[2])}
				if g.Channels == 4 {
					a := int(p[3])
					obj.A = &a
				}
				objs = append(objs, obj)
			}
		}
		return &ObjectDocument{Width: g.Width, Height: g.Height, Pixels: objs}

	case JSONBase64:
		name := "RGB"
		if g.Channels == 4 {
			name = "RGBA"
		}
		return &Base64Document{
			Width:  g.Width,
			Height: g.Height,
			Format: name,
			Data:   base64.StdEncoding.EncodeToString(g.Pix),
		}

	case JSONHex:
		return stringDocument(g, func(r, gr, b uint8) string {
			return hexColor(r, gr, b)
		})

	case JSONCMYK:
		return stringDocument(g, func(r, gr, b uint8) string {
			c, m, y, k := CMYK(r, gr, b)
			return fmt.Sprintf("%d %d %d %d", c, m, y, k)
		})
	}

	return stringDocument(g, func(r, gr, b uint8) string {
		return fmt.Sprintf("%d %d %d", r, gr, b)
	})
}

// WriteJSON encodes the format document for img to w, indented by two
// spaces.
func WriteJSON(w io.Writer, img image.Image, format JSONFormat) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(JSON(img, format)); err != nil {
		return fmt.Errorf("failed to encode %s matrix: %w", format, err)
	}
	return nil
}

func stringDocument(g Grid, cell func(r, g, b uint8) string) *StringDocument {
	rows := make([][]string, g.Height)
	for y := range rows {
		rows[y] = make([]string, g.Width)
		for x := range rows[y] {
			rows[y][x] = cell(g.RGB(x, y))
		}
	}
	return &StringDocument{Width: g.Width, Height: g.Height, Pixels: rows}
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func ints(b []uint8) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}
