// Package pixelate implements the block-averaging engine.
//
// An image is cut into a grid of blocks and each block is repainted with a
// single color chosen by a reducer. Reducers are pure functions of a block's
// RGB pixels; which one runs is decided by a (Mode, Method) pair looked up
// in a fixed dispatch table.
//
// # Modes and methods
//
//	color        amac meav aocs-hsv aocs-lab abdc              (default meav)
//	grayscale    gray-rgb gray-wav gray-hsv-v gray-hsv-s
//	             gray-hsv-h gray-lab-l gray-tc gray-mb abdc    (default gray-wav)
//	black-white  bin-tc bin-mb blwt blwt-tc                    (default blwt-tc)
//
// A method outside its mode's set silently resolves to the mode default.
// Config.Strict turns that into ErrMethodNotAllowed instead.
//
// Grayscale and black-white reducers always return R=G=B, and the
// thresholding reducers (bin-tc, bin-mb, blwt-tc) only ever return pure
// black or pure white. In grayscale mode abdc picks the dominant color
// first and converts it to luma afterwards.
//
// # Rounding
//
// Statistics are computed in float64 and truncated toward zero when turned
// back into 8-bit channels. The one exception is abdc, whose cluster
// centroid is rounded half to even.
package pixelate
