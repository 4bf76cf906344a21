// Package layout carves rectangles for the card and deck compositions.
package layout

import "image"

// Inset shrinks rect by paddingPx on all sides. Over-insetting swaps the
// crossed edges instead of producing an inverted rectangle.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	d := image.Pt(paddingPx, paddingPx)
	return Normalize(image.Rectangle{Min: rect.Min.Add(d), Max: rect.Max.Sub(d)})
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	rect.Min.X, rect.Max.X = min(rect.Min.X, rect.Max.X), max(rect.Min.X, rect.Max.X)
	rect.Min.Y, rect.Max.Y = min(rect.Min.Y, rect.Max.Y), max(rect.Min.Y, rect.Max.Y)
	return rect
}

// SplitHorizontal cuts rect into a top band of topHeightPx (clamped to the
// rect's height) and the remainder below it.
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top, bottom image.Rectangle) {
	rect = Normalize(rect)
	cut := rect.Min.Y + min(max(topHeightPx, 0), rect.Dy())
	top, bottom = rect, rect
	top.Max.Y, bottom.Min.Y = cut, cut
	return top, bottom
}

// SplitBottom is SplitHorizontal measured from the bottom edge.
func SplitBottom(rect image.Rectangle, bottomHeightPx int) (top, bottom image.Rectangle) {
	rect = Normalize(rect)
	return SplitHorizontal(rect, rect.Dy()-min(max(bottomHeightPx, 0), rect.Dy()))
}

// Columns splits rect into n equal-width columns separated by gapPx.
// The last column absorbs any rounding remainder.
func Columns(rect image.Rectangle, n int, gapPx int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	rect = Normalize(rect)
	gapPx = max(gapPx, 0)
	width := max(rect.Dx()-gapPx*(n-1), 0) / n

	out := make([]image.Rectangle, n)
	x := rect.Min.X
	for i := range out {
		right := max(x+width, x)
		if i == n-1 {
			right = max(rect.Max.X, x)
		}
		out[i] = image.Rect(x, rect.Min.Y, right, rect.Max.Y)
		x = min(right+gapPx, rect.Max.X)
	}
	return out
}
