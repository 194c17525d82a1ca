package pixelate

import (
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/image-pixelate/internal/imaging"
)

// Reducer maps a block to the single color it is painted with.
type Reducer func(Block) RGB

// threshold separates black from white in the binary reducers.
const threshold = 128

// reducers is the dispatch table behind Reduce. Every (mode, method) pair
// listed in modeTable has an entry; abdc resolves differently per mode.
var reducers = map[Mode]map[Method]Reducer{
	ModeColor: {
		MethodAMAC:    reduceMean,
		MethodMEAV:    reduceMedian,
		MethodAOCSHSV: reduceHSV,
		MethodAOCSLab: reduceLab,
		MethodABDC:    reduceDominant,
	},
	ModeGrayscale: {
		MethodGrayRGB:  reduceGrayMean,
		MethodGrayWAV:  reduceGrayLuma,
		MethodGrayHSVV: reduceGrayHSV(2),
		MethodGrayHSVS: reduceGrayHSV(1),
		MethodGrayHSVH: reduceGrayHSV(0),
		MethodGrayLabL: reduceGrayLabL,
		MethodGrayTC:   reduceGrayMean,
		MethodGrayMB:   reduceGrayMedian,
		MethodABDC:     reduceGrayDominant,
	},
	ModeBlackWhite: {
		MethodBinTC:  reduceBinaryLuma,
		MethodBinMB:  reduceBinaryLuma,
		MethodBLWT:   reduceWhiteRatio,
		MethodBLWTTC: reduceBinaryWhiteRatio,
	},
}

// ReducerFor returns the reducer for (mode, method) after resolving
// fallbacks with Resolve. The returned reducer maps an empty block to black.
func ReducerFor(mode Mode, method Method) Reducer {
	if _, ok := reducers[mode]; !ok {
		mode = ModeColor
	}
	resolved, _ := Resolve(mode, method)
	fn := reducers[mode][resolved]
	return func(b Block) RGB {
		if b.Len() == 0 || len(b.Pix) < b.Len()*3 {
			return RGB{}
		}
		return fn(b)
	}
}

// Reduce applies the (mode, method) reducer to a single block.
func Reduce(b Block, mode Mode, method Method) RGB {
	return ReducerFor(mode, method)(b)
}

func reduceMean(b Block) RGB {
	r, g, bl := b.channels()
	return RGB{
		R: trunc8(stat.Mean(r, nil)),
		G: trunc8(stat.Mean(g, nil)),
		B: trunc8(stat.Mean(bl, nil)),
	}
}

func reduceMedian(b Block) RGB {
	r, g, bl := b.channels()
	return RGB{R: trunc8(median(r)), G: trunc8(median(g)), B: trunc8(median(bl))}
}

// spaceMeans converts every pixel with conv and returns the mean of each
// converted channel.
func spaceMeans(b Block, conv func(r, g, b uint8) (uint8, uint8, uint8)) [3]float64 {
	n := b.Len()
	var cs [3][]float64
	for c := range cs {
		cs[c] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		x, y, z := conv(b.Pix[i*3], b.Pix[i*3+1], b.Pix[i*3+2])
		cs[0][i], cs[1][i], cs[2][i] = float64(x), float64(y), float64(z)
	}
	return [3]float64{stat.Mean(cs[0], nil), stat.Mean(cs[1], nil), stat.Mean(cs[2], nil)}
}

func reduceHSV(b Block) RGB {
	m := spaceMeans(b, imaging.HSV8)
	r, g, bl := imaging.RGBFromHSV8(trunc8(m[0]), trunc8(m[1]), trunc8(m[2]))
	return RGB{R: r, G: g, B: bl}
}

func reduceLab(b Block) RGB {
	m := spaceMeans(b, imaging.Lab8)
	r, g, bl := imaging.RGBFromLab8(trunc8(m[0]), trunc8(m[1]), trunc8(m[2]))
	return RGB{R: r, G: g, B: bl}
}

// reduceDominant fits a single k-means cluster to the block's pixels and
// returns its centroid rounded half to even.
//
// With k=1 every pixel belongs to the one cluster, so the fit converges on
// the first assignment pass. The centroid is recomputed from the assigned
// observations afterwards because the clustering loop can stop before its
// own recentering step when no assignment changes.
func reduceDominant(b Block) RGB {
	n := b.Len()
	dataset := make(clusters.Observations, 0, n)
	for i := 0; i < n; i++ {
		dataset = append(dataset, clusters.Coordinates{
			float64(b.Pix[i*3]),
			float64(b.Pix[i*3+1]),
			float64(b.Pix[i*3+2]),
		})
	}

	cc, err := kmeans.New().Partition(dataset, 1)
	if err != nil || len(cc) == 0 || len(cc[0].Observations) == 0 {
		return reduceMean(b)
	}
	cc[0].Recenter()
	center := cc[0].Center
	if len(center) < 3 {
		return reduceMean(b)
	}
	return RGB{
		R: trunc8(math.RoundToEven(center[0])),
		G: trunc8(math.RoundToEven(center[1])),
		B: trunc8(math.RoundToEven(center[2])),
	}
}

func reduceGrayMean(b Block) RGB {
	return Gray(trunc8(stat.Mean(b.values(), nil)))
}

func reduceGrayMedian(b Block) RGB {
	return Gray(trunc8(median(b.values())))
}

// blockLuma is the luma of the block's per-channel means, untruncated.
func blockLuma(b Block) float64 {
	r, g, bl := b.channels()
	return luma(stat.Mean(r, nil), stat.Mean(g, nil), stat.Mean(bl, nil))
}

func reduceGrayLuma(b Block) RGB {
	return Gray(trunc8(blockLuma(b)))
}

// reduceGrayHSV averages one HSV8 channel: 0 hue, 1 saturation, 2 value.
func reduceGrayHSV(channel int) Reducer {
	return func(b Block) RGB {
		return Gray(trunc8(spaceMeans(b, imaging.HSV8)[channel]))
	}
}

func reduceGrayLabL(b Block) RGB {
	return Gray(trunc8(spaceMeans(b, imaging.Lab8)[0]))
}

func reduceGrayDominant(b Block) RGB {
	c := reduceDominant(b)
	return Gray(trunc8(luma(float64(c.R), float64(c.G), float64(c.B))))
}

func reduceBinaryLuma(b Block) RGB {
	return binary(blockLuma(b))
}

// whiteRatio is the fraction of channel values >= 128, scaled to [0,255].
func whiteRatio(b Block) float64 {
	n := b.Len() * 3
	white := 0
	for _, v := range b.Pix[:n] {
		if v >= threshold {
			white++
		}
	}
	return 255 * float64(white) / float64(n)
}

func reduceWhiteRatio(b Block) RGB {
	return Gray(trunc8(whiteRatio(b)))
}

func reduceBinaryWhiteRatio(b Block) RGB {
	return binary(whiteRatio(b))
}

func binary(v float64) RGB {
	if v >= threshold {
		return Gray(255)
	}
	return Gray(0)
}
