package matrix

import "math"

// reference is one of the eight primaries used by the glyph renderings.
type reference struct {
	r, g, b int
	glyph   string
	letter  string
}

// references are matched in this order; the first of several equally close
// colors wins. There is no cyan square glyph, so cyan renders as the orange
// square.
var references = []reference{
	{255, 0, 0, "🟥", "R"},
	{0, 255, 0, "🟩", "G"},
	{0, 0, 255, "🟦", "B"},
	{255, 255, 0, "🟨", "Y"},
	{0, 255, 255, "🟧", "C"},
	{255, 0, 255, "🟪", "M"},
	{255, 255, 255, "⬜", "W"},
	{0, 0, 0, "⬛", "K"},
}

// nearest returns the reference color with the smallest squared RGB
// distance to (r, g, b).
func nearest(r, g, b uint8) reference {
	best := references[0]
	bestDist := math.MaxInt
	for _, ref := range references {
		dr := int(r) - ref.r
		dg := int(g) - ref.g
		db := int(b) - ref.b
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			best, bestDist = ref, d
		}
	}
	return best
}

// Glyph returns the colored square glyph closest to (r, g, b).
func Glyph(r, g, b uint8) string {
	return nearest(r, g, b).glyph
}

// Letter returns the one-letter code (R,G,B,Y,C,M,W,K) closest to (r, g, b).
func Letter(r, g, b uint8) string {
	return nearest(r, g, b).letter
}

// CMYK converts an RGB color to percentages truncated toward zero.
// Pure black yields C=M=Y=0, K=100.
func CMYK(r, g, b uint8) (c, m, y, k int) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	kf := 1 - math.Max(rf, math.Max(gf, bf))
	if kf == 1 {
		return 0, 0, 0, 100
	}
	cf := (1 - rf - kf) / (1 - kf)
	mf := (1 - gf - kf) / (1 - kf)
	yf := (1 - bf - kf) / (1 - kf)
	return int(cf * 100), int(mf * 100), int(yf * 100), int(kf * 100)
}

// densityRamp runs from darkest to lightest.
const densityRamp = "@%#*+=-:. "

// Density returns the ramp character for the luma of (r, g, b).
func Density(r, g, b uint8) byte {
	l := (299*float64(r) + 587*float64(g) + 114*float64(b)) / 1000
	idx := int(math.Round(l / 255 * float64(len(densityRamp)-1)))
	idx = max(0, min(idx, len(densityRamp)-1))
	return densityRamp[idx]
}
