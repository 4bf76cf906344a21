package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInset(t *testing.T) {
	r := image.Rect(0, 0, 100, 50)
	assert.Equal(t, image.Rect(10, 10, 90, 40), Inset(r, 10))
	assert.Equal(t, r, Inset(r, 0))
	// Over-inset collapses into a normalized rectangle instead of inverting.
	got := Inset(image.Rect(0, 0, 10, 10), 8)
	assert.Equal(t, image.Rect(2, 2, 8, 8), got)
}

func TestNormalize(t *testing.T) {
	r := image.Rectangle{Min: image.Pt(10, 20), Max: image.Pt(0, 5)}
	assert.Equal(t, image.Rect(0, 5, 10, 20), Normalize(r))
}

func TestSplitHorizontal(t *testing.T) {
	top, bottom := SplitHorizontal(image.Rect(0, 0, 40, 100), 30)
	assert.Equal(t, image.Rect(0, 0, 40, 30), top)
	assert.Equal(t, image.Rect(0, 30, 40, 100), bottom)

	top, bottom = SplitHorizontal(image.Rect(0, 0, 40, 100), 500)
	assert.Equal(t, image.Rect(0, 0, 40, 100), top)
	assert.True(t, bottom.Empty())

	top, _ = SplitHorizontal(image.Rect(0, 0, 40, 100), -3)
	assert.True(t, top.Empty())
}

func TestSplitBottom(t *testing.T) {
	top, bottom := SplitBottom(image.Rect(0, 10, 40, 110), 25)
	assert.Equal(t, image.Rect(0, 10, 40, 85), top)
	assert.Equal(t, image.Rect(0, 85, 40, 110), bottom)

	top, bottom = SplitBottom(image.Rect(0, 0, 40, 100), 500)
	assert.True(t, top.Empty())
	assert.Equal(t, image.Rect(0, 0, 40, 100), bottom)
}

func TestColumns(t *testing.T) {
	cols := Columns(image.Rect(0, 0, 210, 100), 2, 10)
	assert.Equal(t, []image.Rectangle{
		image.Rect(0, 0, 100, 100),
		image.Rect(110, 0, 210, 100),
	}, cols)

	cols = Columns(image.Rect(0, 0, 101, 10), 3, 0)
	assert.Len(t, cols, 3)
	assert.Equal(t, 101, cols[2].Max.X)

	cols = Columns(image.Rect(0, 0, 10, 10), 3, 20)
	for _, c := range cols {
		assert.False(t, c.Min.X > c.Max.X)
	}

	assert.Nil(t, Columns(image.Rect(0, 0, 10, 10), 0, 0))
}
