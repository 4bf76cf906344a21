package render

import (
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"
)

// svgUnits subdivides each pixel because svgo only takes integer coordinates.
const svgUnits = 100

type svgDot struct {
	cx, cy, r int
	c         color.NRGBA
}

// SVGSurface records circles and serializes them as an SVG document.
type SVGSurface struct {
	width, height int
	dots          []svgDot
}

func NewSVGSurface(width, height int) *SVGSurface {
	return &SVGSurface{width: max(width, 0), height: max(height, 0)}
}

func (s *SVGSurface) Size() (int, int) { return s.width, s.height }

func (s *SVGSurface) Clear() { s.dots = s.dots[:0] }

func (s *SVGSurface) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r := int(radius*svgUnits + 0.5)
	if r <= 0 {
		return
	}
	s.dots = append(s.dots, svgDot{
		cx: int(cx*svgUnits + 0.5),
		cy: int(cy*svgUnits + 0.5),
		r:  r,
		c:  c,
	})
}

// Len reports how many circles are recorded.
func (s *SVGSurface) Len() int { return len(s.dots) }

// WriteTo encodes the recorded circles. The viewBox keeps pixel dimensions.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	canvas := svg.New(cw)
	canvas.Startview(s.width, s.height, 0, 0, s.width*svgUnits, s.height*svgUnits)
	for _, d := range s.dots {
		canvas.Circle(d.cx, d.cy, d.r, canvas.RGBA(int(d.c.R), int(d.c.G), int(d.c.B), float64(d.c.A)/255))
	}
	canvas.End()
	return cw.n, cw.err
}

// countingWriter keeps the first write error since svgo discards them.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
