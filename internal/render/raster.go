package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// RasterSurface is an anti-aliased halftone.Surface backed by an *image.RGBA.
// It is not safe for concurrent use.
type RasterSurface struct {
	img *image.RGBA
	z   vector.Rasterizer
}

func NewRasterSurface(width, height int) *RasterSurface {
	s := &RasterSurface{}
	s.Resize(width, height)
	return s
}

// Resize reallocates the backing raster when the size changed. Content is
// discarded either way on the next Clear.
func (s *RasterSurface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if s.img != nil && s.img.Rect.Dx() == width && s.img.Rect.Dy() == height {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Image returns the backing raster. It stays valid until the next Resize.
func (s *RasterSurface) Image() *image.RGBA { return s.img }

func (s *RasterSurface) Size() (int, int) { return s.img.Rect.Dx(), s.img.Rect.Dy() }

func (s *RasterSurface) Clear() { clear(s.img.Pix) }

func (s *RasterSurface) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	if !(radius > 0) || c.A == 0 {
		return
	}
	bounds := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius)),
	)
	clip := bounds.Intersect(s.img.Rect)
	if clip.Empty() {
		return
	}

	// The rasterizer covers only the visible part; path segments outside it
	// are clamped by vector.
	s.z.Reset(clip.Dx(), clip.Dy())
	s.z.DrawOp = draw.Over
	ox := float32(cx - float64(clip.Min.X))
	oy := float32(cy - float64(clip.Min.Y))
	r := float32(radius)
	k := float32(kappa) * r
	s.z.MoveTo(ox+r, oy)
	s.z.CubeTo(ox+r, oy+k, ox+k, oy+r, ox, oy+r)
	s.z.CubeTo(ox-k, oy+r, ox-r, oy+k, ox-r, oy)
	s.z.CubeTo(ox-r, oy-k, ox-k, oy-r, ox, oy-r)
	s.z.CubeTo(ox+k, oy-r, ox+r, oy-k, ox+r, oy)
	s.z.ClosePath()
	s.z.Draw(s.img, clip, image.NewUniform(c), image.Point{})
}
