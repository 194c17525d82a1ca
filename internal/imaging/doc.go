// Package imaging provides the image plumbing around the pixelation engine.
//
// It covers decoding (with a path-keyed cache), encoding and saving, the
// pre-processing adapters applied before tiling (resize and brightness),
// the 8-bit HSV and CIE L*a*b* conversions shared by the color reducers and
// a dominant-color palette summary.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner. Functions
// that return new images always return them with bounds starting at the
// origin, whatever the bounds of the input.
//
// # Color Encodings
//
// HSV8 and Lab8 mirror the compact 8-bit layouts used by common image
// libraries so that averaged results line up with them:
//   - HSV: H = degrees/2 in [0,180), S and V in [0,255]
//   - Lab: L = L*·255/100, a = a*+128, b = b*+128, each in [0,255]
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless.
package imaging
