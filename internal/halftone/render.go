package halftone

import (
	"image/color"
	"math"
)

const (
	accentDensity  = 0.001
	accentSizeUnit = 0.8
	accentAlpha    = 204 // 80% of 255
)

// Grid is the cell partition of a surface.
type Grid struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// Cells returns the number of cells evaluated by the grid pass.
func (g Grid) Cells() int { return g.Cols * g.Rows }

// GridFor partitions a width x height surface into cells of side spacing.
// The last row and column may be partial.
func GridFor(width, height int, spacing float64) Grid {
	if width <= 0 || height <= 0 || !(spacing > 0) {
		return Grid{}
	}
	return Grid{
		Cols: int(math.Ceil(float64(width) / spacing)),
		Rows: int(math.Ceil(float64(height) / spacing)),
	}
}

// AccentIterations is floor(width*height*0.001).
func AccentIterations(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return int(math.Floor(float64(width) * float64(height) * accentDensity))
}

// Stats summarizes what a single render drew.
type Stats struct {
	Width            int  `json:"width"`
	Height           int  `json:"height"`
	Grid             Grid `json:"grid"`
	GridDots         int  `json:"gridDots"`
	AccentIterations int  `json:"accentIterations"`
	AccentDots       int  `json:"accentDots"`
}

// Renderer draws the pattern using its random source.
// The zero value uses DefaultRand.
type Renderer struct {
	Rand Rand
}

// Render clears s and draws the pattern for p.
func (r Renderer) Render(s Surface, p Params) Stats {
	return Render(s, p, r.Rand)
}

// Render clears s and draws a fresh pattern. Every call samples new noise, so
// two renders with identical params share grid and color but not placement.
// A nil surface is a no-op.
func Render(s Surface, p Params, rnd Rand) Stats {
	if s == nil {
		return Stats{}
	}
	if rnd == nil {
		rnd = DefaultRand
	}
	width, height := s.Size()
	s.Clear()

	stats := Stats{Width: width, Height: height, Grid: GridFor(width, height, p.Spacing)}
	if stats.Grid.Cells() == 0 {
		return stats
	}

	base := color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: 0xFF}
	cols, rows := float64(stats.Grid.Cols), float64(stats.Grid.Rows)
	halfCols, halfRows := cols/2, rows/2

	for y := 0; y < stats.Grid.Rows; y++ {
		for x := 0; x < stats.Grid.Cols; x++ {
			noise := rnd.Float64() * p.Noise * 255
			dx := (float64(x) - halfCols) / halfCols
			dy := (float64(y) - halfRows) / halfRows
			d := math.Sqrt(dx*dx + dy*dy)

			value := (1-d)*255 + noise
			if !(value > p.Threshold) {
				continue
			}
			diameter := p.DotUnit * (value / 255) * (1 - d*0.5)
			if !(diameter > 0) {
				continue
			}
			cx := float64(x)*p.Spacing + p.Spacing/2
			cy := float64(y)*p.Spacing + p.Spacing/2
			// A partial last column or row can put the midpoint past the edge.
			if cx > float64(width) || cy > float64(height) {
				continue
			}
			s.FillCircle(cx, cy, diameter/2, base)
			stats.GridDots++
		}
	}

	accent := base
	accent.A = accentAlpha
	stats.AccentIterations = AccentIterations(width, height)
	for i := 0; i < stats.AccentIterations; i++ {
		cx := rnd.Float64() * float64(width)
		cy := rnd.Float64() * float64(height)
		diameter := rnd.Float64() * p.DotUnit * accentSizeUnit
		if rnd.Float64() <= 0.5 || !(diameter > 0) {
			continue
		}
		s.FillCircle(cx, cy, diameter/2, accent)
		stats.AccentDots++
	}
	return stats
}
