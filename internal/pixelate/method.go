package pixelate

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the family of reducers an image is pixelated with.
type Mode string

// Supported modes.
const (
	ModeColor      Mode = "color"
	ModeGrayscale  Mode = "grayscale"
	ModeBlackWhite Mode = "black-white"
)

// Method names a per-block color reduction strategy.
type Method string

// Catalog of reduction methods. Not every method is valid in every mode;
// see Methods.
const (
	MethodAMAC     Method = "amac"       // per-channel arithmetic mean
	MethodMEAV     Method = "meav"       // per-channel median
	MethodAOCSHSV  Method = "aocs-hsv"   // mean in HSV space
	MethodAOCSLab  Method = "aocs-lab"   // mean in CIE L*a*b* space
	MethodABDC     Method = "abdc"       // dominant color, single-cluster k-means
	MethodGrayRGB  Method = "gray-rgb"   // mean of all channel values
	MethodGrayWAV  Method = "gray-wav"   // luma-weighted mean
	MethodGrayHSVV Method = "gray-hsv-v" // mean HSV value
	MethodGrayHSVS Method = "gray-hsv-s" // mean HSV saturation
	MethodGrayHSVH Method = "gray-hsv-h" // mean HSV hue
	MethodGrayLabL Method = "gray-lab-l" // mean L*
	MethodGrayTC   Method = "gray-tc"    // mean of all channel values
	MethodGrayMB   Method = "gray-mb"    // median of all channel values
	MethodBinTC    Method = "bin-tc"     // luma threshold at 128
	MethodBinMB    Method = "bin-mb"     // luma threshold at 128
	MethodBLWT     Method = "blwt"       // white-ratio score
	MethodBLWTTC   Method = "blwt-tc"    // white-ratio score threshold at 128
)

var (
	// ErrUnknownMode is returned when a mode name is not recognized.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrUnknownMethod is returned when a method name is not in the catalog.
	ErrUnknownMethod = errors.New("unknown averaging method")

	// ErrMethodNotAllowed is returned by strict validation when a method is
	// not part of the selected mode's set.
	ErrMethodNotAllowed = errors.New("averaging method not allowed in mode")
)

// modeTable is the single source of truth for which methods a mode accepts,
// in display order, and which one it falls back to.
var modeTable = map[Mode]struct {
	def     Method
	methods []Method
}{
	ModeColor: {
		def:     MethodMEAV,
		methods: []Method{MethodAMAC, MethodMEAV, MethodAOCSHSV, MethodAOCSLab, MethodABDC},
	},
	ModeGrayscale: {
		def: MethodGrayWAV,
		methods: []Method{
			MethodGrayRGB, MethodGrayWAV, MethodGrayHSVV, MethodGrayHSVS, MethodGrayHSVH,
			MethodGrayLabL, MethodGrayTC, MethodGrayMB, MethodABDC,
		},
	},
	ModeBlackWhite: {
		def:     MethodBLWTTC,
		methods: []Method{MethodBinTC, MethodBinMB, MethodBLWT, MethodBLWTTC},
	},
}

// Modes lists the supported modes.
func Modes() []Mode {
	return []Mode{ModeColor, ModeGrayscale, ModeBlackWhite}
}

// AllMethods lists every method in the catalog once, in catalog order.
func AllMethods() []Method {
	return []Method{
		MethodAMAC, MethodMEAV, MethodAOCSHSV, MethodAOCSLab, MethodABDC,
		MethodGrayRGB, MethodGrayWAV, MethodGrayHSVV, MethodGrayHSVS, MethodGrayHSVH,
		MethodGrayLabL, MethodBinTC, MethodBinMB, MethodGrayTC, MethodGrayMB,
		MethodBLWT, MethodBLWTTC,
	}
}

// Methods returns the methods accepted by mode. Unknown modes are treated
// as ModeColor.
func Methods(mode Mode) []Method {
	spec, ok := modeTable[mode]
	if !ok {
		spec = modeTable[ModeColor]
	}
	out := make([]Method, len(spec.methods))
	copy(out, spec.methods)
	return out
}

// DefaultMethod returns the method mode falls back to.
func DefaultMethod(mode Mode) Method {
	spec, ok := modeTable[mode]
	if !ok {
		return modeTable[ModeColor].def
	}
	return spec.def
}

// Allowed reports whether method is part of mode's set.
func Allowed(mode Mode, method Method) bool {
	spec, ok := modeTable[mode]
	if !ok {
		return false
	}
	for _, m := range spec.methods {
		if m == method {
			return true
		}
	}
	return false
}

// Resolve maps a (mode, method) pair onto the method that will actually run.
//
// Unknown modes behave as ModeColor. A method outside the mode's set is
// replaced by the mode's default and fallback is reported as true.
func Resolve(mode Mode, method Method) (resolved Method, fallback bool) {
	if _, ok := modeTable[mode]; !ok {
		mode = ModeColor
	}
	if Allowed(mode, method) {
		return method, false
	}
	return DefaultMethod(mode), true
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := modeTable[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// ParseMethod parses a method name, case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllMethods() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}
