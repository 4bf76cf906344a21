package halftone

import (
	"image/color"
	"math/rand"
)

// Surface is the drawing target of a render. It is borrowed for the duration
// of one Render call and never retained.
type Surface interface {
	// Size returns the raster size in device pixels.
	Size() (width int, height int)
	// Clear resets every pixel to transparent.
	Clear()
	// FillCircle draws a filled circle. Callers never pass a non-positive radius.
	FillCircle(cx, cy, radius float64, c color.NRGBA)
}

// Rand supplies uniform samples in [0,1).
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand draws from the process-wide math/rand source.
var DefaultRand Rand = globalRand{}
