package matrix

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"math/bits"
	"strconv"
	"strings"
)

// Decode rebuilds an image from a JSON matrix document of the given format.
// Every layout except cmyk is lossless; cmyk is rejected.
//
// # Errors
//
//   - Returns ErrUnknownFormat for cmyk or an unrecognized format
//   - Returns ErrMalformedMatrix if the document does not match its own
//     dimensions or holds values outside [0,255]
func Decode(format JSONFormat, data []byte) (*image.NRGBA, error) {
	switch format {
	case JSONNested:
		var doc NestedDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMatrix, err)
		}
		return decodeNested(doc, len(data))
	case JSONFlat:
		var doc FlatDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMatrix, err)
		}
		return decodeFlat(doc, len(data))
	case JSONObjects:
		var doc ObjectDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMatrix, err)
		}
		return decodeObjects(doc, len(data))
	case JSONBase64:
		var doc Base64Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMatrix, err)
		}
		return decodeBase64(doc, len(data))
	case JSONHex, JSONRGB:
		var doc StringDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMatrix, err)
		}
		parse := parseRGBTriple
		if format == JSONHex {
			parse = parseHexColor
		}
		return decodeStrings(doc, parse, len(data))
	}
	return nil, fmt.Errorf("%w: %q cannot be decoded", ErrUnknownFormat, format)
}

// newGrid sizes an empty grid for a document of docLen bytes. Every channel
// value takes at least one byte of the document, so a size larger than
// docLen cannot be honest and is rejected before anything is allocated.
func newGrid(width, height, channels, docLen int) (Grid, error) {
	if width < 0 || height < 0 {
		return Grid{}, fmt.Errorf("%w: negative size %dx%d", ErrMalformedMatrix, width, height)
	}
	if channels != 3 && channels != 4 {
		return Grid{}, fmt.Errorf("%w: %d channels", ErrMalformedMatrix, channels)
	}
	hi, area := bits.Mul64(uint64(width), uint64(height))
	if hi != 0 {
		return Grid{}, fmt.Errorf("%w: size %dx%d overflows", ErrMalformedMatrix, width, height)
	}
	hi, n := bits.Mul64(area, uint64(channels))
	if hi != 0 || n > uint64(docLen) {
		return Grid{}, fmt.Errorf("%w: size %dx%d exceeds document", ErrMalformedMatrix, width, height)
	}
	return Grid{Width: width, Height: height, Channels: channels, Pix: make([]uint8, 0, int(n))}, nil
}

func decodeNested(doc NestedDocument, docLen int) (*image.NRGBA, error) {
	if len(doc.Pixels) != doc.Height {
		return nil, fmt.Errorf("%w: %d rows for height %d", ErrMalformedMatrix, len(doc.Pixels), doc.Height)
	}
	channels := 3
	if doc.Height > 0 && doc.Width > 0 && len(doc.Pixels[0]) > 0 {
		channels = len(doc.Pixels[0][0])
	}
	g, err := newGrid(doc.Width, doc.Height, channels, docLen)
	if err != nil {
		return nil, err
	}
	for y, row := range doc.Pixels {
		if len(row) != doc.Width {
			return nil, fmt.Errorf("%w: row %d has %d pixels", ErrMalformedMatrix, y, len(row))
		}
		for x, px := range row {
			if len(px) != channels {
				return nil, fmt.Errorf("%w: pixel (%d,%d) has %d channels", ErrMalformedMatrix, x, y, len(px))
			}
			if g.Pix, err = appendChannels(g.Pix, px...); err != nil {
				return nil, err
			}
		}
	}
	return g.Image(), nil
}

func decodeFlat(doc FlatDocument, docLen int) (*image.NRGBA, error) {
	g, err := newGrid(doc.Width, doc.Height, doc.Channels, docLen)
	if err != nil {
		return nil, err
	}
	if len(doc.Pixels) != cap(g.Pix) {
		return nil, fmt.Errorf("%w: %d values for %dx%dx%d", ErrMalformedMatrix,
			len(doc.Pixels), doc.Width, doc.Height, doc.Channels)
	}
	if g.Pix, err = appendChannels(g.Pix, doc.Pixels...); err != nil {
		return nil, err
	}
	return g.Image(), nil
}

func decodeObjects(doc ObjectDocument, docLen int) (*image.NRGBA, error) {
	channels := 3
	if len(doc.Pixels) > 0 && doc.Pixels[0].A != nil {
		channels = 4
	}
	g, err := newGrid(doc.Width, doc.Height, channels, docLen)
	if err != nil {
		return nil, err
	}
	if len(doc.Pixels)*channels != cap(g.Pix) {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrMalformedMatrix, len(doc.Pixels), doc.Width, doc.Height)
	}
	g.Pix = g.Pix[:cap(g.Pix)]
	for _, p := range doc.Pixels {
		if p.X < 0 || p.X >= doc.Width || p.Y < 0 || p.Y >= doc.Height {
			return nil, fmt.Errorf("%w: pixel (%d,%d) out of bounds", ErrMalformedMatrix, p.X, p.Y)
		}
		vals := []int{p.R, p.G, p.B}
		if channels == 4 {
			if p.A == nil {
				return nil, fmt.Errorf("%w: pixel (%d,%d) missing alpha", ErrMalformedMatrix, p.X, p.Y)
			}
			vals = append(vals, *p.A)
		}
		px, err := appendChannels(nil, vals...)
		if err != nil {
			return nil, err
		}
		copy(g.At(p.X, p.Y), px)
	}
	return g.Image(), nil
}

func decodeBase64(doc Base64Document, docLen int) (*image.NRGBA, error) {
	channels := 3
	switch doc.Format {
	case "RGB":
	case "RGBA":
		channels = 4
	default:
		return nil, fmt.Errorf("%w: byte format %q", ErrMalformedMatrix, doc.Format)
	}
	g, err := newGrid(doc.Width, doc.Height, channels, docLen)
	if err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMatrix, err)
	}
	if len(raw) != cap(g.Pix) {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d %s", ErrMalformedMatrix, len(raw), doc.Width, doc.Height, doc.Format)
	}
	g.Pix = raw
	return g.Image(), nil
}

func decodeStrings(doc StringDocument, parse func(string) ([3]uint8, error), docLen int) (*image.NRGBA, error) {
	if len(doc.Pixels) != doc.Height {
		return nil, fmt.Errorf("%w: %d rows for height %d", ErrMalformedMatrix, len(doc.Pixels), doc.Height)
	}
	g, err := newGrid(doc.Width, doc.Height, 3, docLen)
	if err != nil {
		return nil, err
	}
	for y, row := range doc.Pixels {
		if len(row) != doc.Width {
			return nil, fmt.Errorf("%w: row %d has %d pixels", ErrMalformedMatrix, y, len(row))
		}
		for _, cell := range row {
			c, err := parse(cell)
			if err != nil {
				return nil, err
			}
			g.Pix = append(g.Pix, c[:]...)
		}
	}
	return g.Image(), nil
}

func appendChannels(dst []uint8, vals ...int) ([]uint8, error) {
	for _, v := range vals {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: channel value %d out of range", ErrMalformedMatrix, v)
		}
		dst = append(dst, uint8(v))
	}
	return dst, nil
}

// parseRGBTriple parses "r g b".
func parseRGBTriple(s string) ([3]uint8, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return [3]uint8{}, fmt.Errorf("%w: rgb cell %q", ErrMalformedMatrix, s)
	}
	var out [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return [3]uint8{}, fmt.Errorf("%w: rgb cell %q", ErrMalformedMatrix, s)
		}
		out[i] = uint8(v)
	}
	return out, nil
}

// parseHexColor parses "#rrggbb" (the leading '#' is optional).
func parseHexColor(s string) ([3]uint8, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return [3]uint8{}, fmt.Errorf("%w: hex cell %q", ErrMalformedMatrix, s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [3]uint8{}, fmt.Errorf("%w: hex cell %q", ErrMalformedMatrix, s)
	}
	return [3]uint8{uint8(val >> 16), uint8(val >> 8), uint8(val)}, nil
}
