// Package render holds the drawing surfaces for the halftone pattern and the
// on-device display that shows the card deck.
package render

import (
	"context"
	"image"
	"image/color"

	"github.com/rook-computer/halftone/internal/state"
)

// Renderer owns a display and repaints the current Screen from store
// snapshots.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen Screen)
	RunLoop(ctx context.Context, store *state.Store)
	RedrawWithState(settings state.Settings)
}

// Screen paints one full frame for a settings snapshot.
type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(d Drawer, settings state.Settings)
}

// NoopRenderer stands in when no display is attached.
type NoopRenderer struct{}

func (*NoopRenderer) Start(context.Context) error           { return nil }
func (*NoopRenderer) Stop() error                           { return nil }
func (*NoopRenderer) SetScreen(Screen)                      {}
func (*NoopRenderer) RunLoop(context.Context, *state.Store) {}
func (*NoopRenderer) RedrawWithState(state.Settings)        {}

// Drawer is what a Screen may do to the logical canvas.
type Drawer interface {
	Size() (width, height int)
	FillBackground()
	MeasureText(text string, style TextStyle) TextMetrics
	// DrawText anchors y at the top of the line; Align decides how x is read.
	DrawText(text string, x, y int, style TextStyle) TextMetrics
	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle falls back to Foreground when Color is nil.
type TextStyle struct {
	Color color.Color
	Align TextAlign
}

type TextMetrics struct {
	Width  int
	Height int
	Ascent int
}

type ScaleMode int

const (
	ScaleModeFit ScaleMode = iota
	ScaleModeFill
	ScaleModeStretch
)

// ScaledRect places a srcW×srcH image into rect. Fit and Fill keep the aspect
// ratio and center the result; Fill may overflow rect.
func ScaledRect(srcW, srcH int, rect image.Rectangle, mode ScaleMode) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || rect.Empty() || mode == ScaleModeStretch {
		return rect
	}
	sx := float64(rect.Dx()) / float64(srcW)
	sy := float64(rect.Dy()) / float64(srcH)
	scale := max(sx, sy)
	if mode == ScaleModeFit {
		scale = min(sx, sy)
	}
	size := image.Pt(int(float64(srcW)*scale), int(float64(srcH)*scale))
	origin := rect.Min.Add(rect.Size().Sub(size).Div(2))
	return image.Rectangle{Min: origin, Max: origin.Add(size)}
}
