// Package matrix exports pixel data as structured JSON documents or plain
// text, and renders console previews.
//
// JSON layouts (see JSONFormat):
//
//	aoa   {"width","height","pixels":[[[r,g,b],...],...]}
//	sla   {"width","height","channels","pixels":[r,g,b,r,g,b,...]}
//	slo   {"width","height","pixels":[{"x","y","r","g","b"},...]}
//	b64   {"width","height","format":"RGB","data":"..."}
//	hex   {"width","height","pixels":[["#rrggbb",...],...]}
//	rgb   {"width","height","pixels":[["r g b",...],...]}
//	cmyk  {"width","height","pixels":[["c m y k",...],...]}
//
// Every layout except cmyk can be turned back into an image with Decode.
// Pixels are always visited in row-major order. Images with transparency
// export an alpha channel in the aoa, sla, slo and b64 layouts.
package matrix
