package screens

import (
	"context"
	"image"
	"sync"

	"github.com/rook-computer/halftone/internal/card"
	"github.com/rook-computer/halftone/internal/render"
	"github.com/rook-computer/halftone/internal/render/layout"
	"github.com/rook-computer/halftone/internal/state"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

const (
	deckMarginPx = 80
	hintGapPx    = 24
)

// DeckScreen shows every card side by side, re-composed from the settings
// on each draw, with an optional hint line below.
type DeckScreen struct {
	Composer *card.Composer
	Logger   Logger

	mu   sync.RWMutex
	hint string
}

func NewDeckScreen(composer *card.Composer, logger Logger) *DeckScreen {
	return &DeckScreen{Composer: composer, Logger: logger}
}

func (screen *DeckScreen) Start(ctx context.Context) error { return nil }
func (screen *DeckScreen) Stop() error                     { return nil }

// SetHint replaces the line drawn under the cards, e.g. the control page URL.
func (screen *DeckScreen) SetHint(hint string) {
	screen.mu.Lock()
	screen.hint = hint
	screen.mu.Unlock()
}

func (screen *DeckScreen) getHint() string {
	screen.mu.RLock()
	defer screen.mu.RUnlock()
	return screen.hint
}

func (screen *DeckScreen) Draw(drawer render.Drawer, settings state.Settings) {
	drawer.FillBackground()
	width, height := drawer.Size()
	area := layout.Inset(image.Rect(0, 0, width, height), deckMarginPx)

	if hint := screen.getHint(); hint != "" {
		style := render.TextStyle{Color: render.Foreground, Align: render.TextAlignCenter}
		metrics := drawer.MeasureText(hint, style)
		var hintRect image.Rectangle
		area, hintRect = layout.SplitBottom(area, metrics.Height+hintGapPx)
		drawer.DrawText(hint, hintRect.Min.X+hintRect.Dx()/2, hintRect.Min.Y+hintGapPx, style)
	}

	composer := screen.Composer
	if composer == nil {
		composer = &card.Composer{}
	}
	res, err := composer.ComposeDeck(settings)
	if err != nil {
		if screen.Logger != nil {
			screen.Logger.Errorf("screen", "compose deck failed: %v", err)
		}
		return
	}
	drawer.DrawImageInRect(res.Image, area, render.ScaleModeFit)
}
