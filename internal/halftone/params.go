// Package halftone synthesizes the procedural dot field drawn on every card: a
// radial vignette of grid dots perturbed by noise, plus a sparse layer of
// accent dots. It draws through the Surface capability so any raster or
// vector backend can receive the pattern.
package halftone

import (
	"regexp"
	"strconv"
)

// RGB is an opaque base color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Params are the five user-adjustable inputs of a render.
//
// Spacing must be positive; Threshold is expected in [0,255] and Noise in
// [0,1]. Render does not validate ranges, the caller constrains them.
type Params struct {
	Color     RGB     `json:"color"`
	DotUnit   float64 `json:"dotUnit"`
	Spacing   float64 `json:"spacing"`
	Threshold float64 `json:"threshold"`
	Noise     float64 `json:"noise"`
}

var hexColorPattern = regexp.MustCompile(`(?i)^#?([0-9a-f]{2})([0-9a-f]{2})([0-9a-f]{2})$`)

// ParseHexColor parses "#rrggbb" (case-insensitive, leading '#' optional).
// Anything else yields black.
func ParseHexColor(s string) RGB {
	m := hexColorPattern.FindStringSubmatch(s)
	if m == nil {
		return RGB{}
	}
	return RGB{R: hexByte(m[1]), G: hexByte(m[2]), B: hexByte(m[3])}
}

func hexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}
