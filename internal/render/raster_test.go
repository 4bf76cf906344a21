package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterSurface_FillCircle(t *testing.T) {
	s := NewRasterSurface(40, 30)
	w, h := s.Size()
	require.Equal(t, 40, w)
	require.Equal(t, 30, h)

	pink := color.NRGBA{R: 255, G: 102, B: 204, A: 255}
	s.FillCircle(20, 15, 6, pink)

	img := s.Image()
	center := img.RGBAAt(20, 15)
	assert.InDelta(t, 255, int(center.R), 1)
	assert.InDelta(t, 102, int(center.G), 1)
	assert.InDelta(t, 204, int(center.B), 1)
	assert.InDelta(t, 255, int(center.A), 1)
	assert.Equal(t, color.RGBA{}, img.RGBAAt(2, 2))
	assert.NotZero(t, img.RGBAAt(25, 15).A)

	s.Clear()
	assert.Equal(t, color.RGBA{}, img.RGBAAt(20, 15))
}

func TestRasterSurface_Translucent(t *testing.T) {
	s := NewRasterSurface(10, 10)
	s.FillCircle(5, 5, 4, color.NRGBA{R: 255, A: 204})
	got := s.Image().RGBAAt(5, 5)
	assert.InDelta(t, 204, int(got.A), 1)
	assert.InDelta(t, 204, int(got.R), 1)
}

func TestRasterSurface_ClipsAtEdges(t *testing.T) {
	s := NewRasterSurface(16, 16)
	c := color.NRGBA{B: 255, A: 255}
	assert.NotPanics(t, func() {
		s.FillCircle(0, 0, 5, c)
		s.FillCircle(16, 16, 5, c)
		s.FillCircle(-50, 8, 5, c)
		s.FillCircle(8, 8, 0, c)
		s.FillCircle(8, 8, -3, c)
	})
	assert.InDelta(t, 255, int(s.Image().RGBAAt(0, 0).B), 1)
	assert.InDelta(t, 255, int(s.Image().RGBAAt(15, 15).B), 1)
	assert.Zero(t, s.Image().RGBAAt(8, 8).A)
}

func TestRasterSurface_Resize(t *testing.T) {
	s := NewRasterSurface(8, 8)
	first := s.Image()
	s.Resize(8, 8)
	assert.Same(t, first, s.Image())

	s.Resize(12, 4)
	assert.Equal(t, image.Rect(0, 0, 12, 4), s.Image().Bounds())

	s.Resize(-1, 5)
	w, h := s.Size()
	assert.Equal(t, 0, w)
	assert.Equal(t, 5, h)
	assert.NotPanics(t, func() {
		s.Clear()
		s.FillCircle(0, 0, 2, color.NRGBA{A: 255})
	})
}

func TestScaledRect(t *testing.T) {
	rect := image.Rect(0, 0, 200, 100)
	assert.Equal(t, image.Rect(50, 0, 150, 100), ScaledRect(50, 50, rect, ScaleModeFit))
	assert.Equal(t, image.Rect(0, -50, 200, 150), ScaledRect(50, 50, rect, ScaleModeFill))
	assert.Equal(t, rect, ScaledRect(50, 50, rect, ScaleModeStretch))
	assert.Equal(t, rect, ScaledRect(0, 50, rect, ScaleModeFit))
}

func TestGenerateQRCodeImage(t *testing.T) {
	img, err := GenerateQRCodeImage("", 64, nil)
	require.NoError(t, err)
	assert.Nil(t, img)

	img, err = GenerateQRCodeImage("halftone", 64, color.Black)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.GreaterOrEqual(t, img.Bounds().Dx(), 21)
}
