package screens

import (
	"image"
	"testing"
	"time"

	"github.com/rook-computer/halftone/internal/card"
	"github.com/rook-computer/halftone/internal/render"
	"github.com/rook-computer/halftone/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDrawer struct {
	w, h        int
	background  int
	texts       []string
	images      []image.Rectangle
	imageBounds []image.Rectangle
}

func (d *fakeDrawer) Size() (int, int) { return d.w, d.h }
func (d *fakeDrawer) FillBackground()  { d.background++ }
func (d *fakeDrawer) MeasureText(text string, style render.TextStyle) render.TextMetrics {
	return render.TextMetrics{Width: 10 * len(text), Height: 20}
}
func (d *fakeDrawer) DrawText(text string, x, y int, style render.TextStyle) render.TextMetrics {
	d.texts = append(d.texts, text)
	return d.MeasureText(text, style)
}
func (d *fakeDrawer) DrawImageInRect(img image.Image, rect image.Rectangle, mode render.ScaleMode) {
	d.images = append(d.images, rect)
	d.imageBounds = append(d.imageBounds, img.Bounds())
}

func TestDeckScreenDraw(t *testing.T) {
	composer := &card.Composer{Width: 100, Now: func() time.Time { return time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC) }}
	screen := NewDeckScreen(composer, nil)
	drawer := &fakeDrawer{w: 1920, h: 1080}

	screen.Draw(drawer, state.DefaultSettings())
	assert.Equal(t, 1, drawer.background)
	assert.Empty(t, drawer.texts)
	require.Len(t, drawer.images, 1)
	assert.Equal(t, image.Rect(80, 80, 1840, 1000), drawer.images[0])
	assert.Equal(t, image.Rect(0, 0, 208, 122), drawer.imageBounds[0])

	screen.SetHint("open http://halftone.local/")
	drawer = &fakeDrawer{w: 1920, h: 1080}
	screen.Draw(drawer, state.DefaultSettings())
	assert.Equal(t, []string{"open http://halftone.local/"}, drawer.texts)
	require.Len(t, drawer.images, 1)
	assert.Equal(t, image.Rect(80, 80, 1840, 956), drawer.images[0])
}
