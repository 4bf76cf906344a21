// Package card composes the shareable run cards: header, halftone panel and
// footer text, exported as raster images.
package card

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/rook-computer/halftone/internal/halftone"
	"github.com/rook-computer/halftone/internal/render"
	"github.com/rook-computer/halftone/internal/render/layout"
	"github.com/rook-computer/halftone/internal/state"
)

const (
	DefaultWidth = 400

	// Proportions relative to the card width.
	paddingRatio      = 0.05
	cornerRatio       = 0.08
	panelCornerRatio  = 0.06
	headerRatio       = 0.07
	footerRatio       = 0.07
	gapRatio          = 0.03
	textRatio         = 0.035
	smallTextRatio    = 0.03
	cardHeightRatio   = 1.22
	deckGapRatio      = 0.08
	maxExportScale    = 4
	minExportScale    = 1
	defaultShareLabel = "halftone"
)

var (
	cardBackground = color.RGBA{R: 0xFD, G: 0xF2, B: 0xF8, A: 0xFF} // pink-50
	textColor      = color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xFF} // gray-700
	mutedColor     = color.RGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF} // gray-500
)

type theme struct {
	badgeBackground color.Color
	badgeText       color.Color
	panel           color.Color
}

var themes = map[state.Rarity]theme{
	state.Uncommon: {
		badgeBackground: color.RGBA{R: 0xFB, G: 0xCF, B: 0xE8, A: 0xFF},
		badgeText:       color.RGBA{R: 0xBE, G: 0x18, B: 0x5D, A: 0xFF},
		panel:           color.RGBA{R: 0xDB, G: 0xEA, B: 0xFE, A: 0xFF},
	},
	state.Rare: {
		badgeBackground: color.RGBA{R: 0xD9, G: 0xF9, B: 0x9D, A: 0xFF},
		badgeText:       color.RGBA{R: 0x4D, G: 0x7C, B: 0x0F, A: 0xFF},
		panel:           color.RGBA{R: 0xE5, G: 0xE7, B: 0xEB, A: 0xFF},
	},
}

func themeFor(r state.Rarity) theme {
	if t, ok := themes[r]; ok {
		return t
	}
	return themes[state.Uncommon]
}

// PatternParams maps the shared pattern controls and a card color onto
// renderer parameters.
func PatternParams(pattern state.PatternSettings, hexColor string) halftone.Params {
	return halftone.Params{
		Color:     halftone.ParseHexColor(hexColor),
		DotUnit:   float64(pattern.DotSize),
		Spacing:   float64(pattern.Spacing),
		Threshold: float64(pattern.Threshold),
		Noise:     pattern.Noise,
	}
}

// FormatDate renders t like "Thu, 15 Oct 2026".
func FormatDate(t time.Time) string {
	return t.Format("Mon, 2 Jan 2006")
}

// Composer draws cards. The zero value draws 400px wide cards dated now.
type Composer struct {
	Width    int
	Renderer halftone.Renderer
	Now      func() time.Time
	Logger   interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

// Result is a composed image plus what the halftone pass drew.
type Result struct {
	Image   image.Image
	Pattern []halftone.Stats
}

func (c *Composer) width() int {
	if c.Width > 0 {
		return c.Width
	}
	return DefaultWidth
}

func (c *Composer) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Size returns the pixel size of one card.
func (c *Composer) Size() (int, int) {
	w := c.width()
	return w, int(math.Round(float64(w) * cardHeightRatio))
}

// PanelRect is where the halftone panel sits inside a card of width w.
func PanelRect(w, h int) image.Rectangle {
	content := layout.Inset(image.Rect(0, 0, w, h), scaled(w, paddingRatio))
	_, rest := layout.SplitHorizontal(content, scaled(w, headerRatio)+scaled(w, gapRatio))
	panel, _ := layout.SplitBottom(rest, scaled(w, footerRatio)+scaled(w, gapRatio))
	return panel
}

func scaled(w int, ratio float64) int {
	return int(math.Round(float64(w) * ratio))
}

// Compose draws one card for the given settings.
func (c *Composer) Compose(card state.CardSettings, pattern state.PatternSettings) (Result, error) {
	fonts, err := loadFonts()
	if err != nil {
		return Result{}, err
	}
	w, h := c.Size()
	th := themeFor(card.Rarity)

	dc := gg.NewContext(w, h)
	dc.SetColor(cardBackground)
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), float64(w)*cornerRatio)
	dc.Fill()

	content := layout.Inset(image.Rect(0, 0, w, h), scaled(w, paddingRatio))
	header, _ := layout.SplitHorizontal(content, scaled(w, headerRatio))
	panel := PanelRect(w, h)
	_, footer := layout.SplitBottom(content, scaled(w, footerRatio))

	if err := c.drawHeader(dc, fonts, header, card, th); err != nil {
		return Result{}, err
	}

	surface := render.NewRasterSurface(panel.Dx(), panel.Dy())
	stats := c.Renderer.Render(surface, PatternParams(pattern, card.Color))
	if c.Logger != nil {
		c.Logger.Infof("card", "pattern %dx%d grid=%dx%d dots=%d accents=%d/%d",
			stats.Width, stats.Height, stats.Grid.Cols, stats.Grid.Rows,
			stats.GridDots, stats.AccentDots, stats.AccentIterations)
	}

	px, py := float64(panel.Min.X), float64(panel.Min.Y)
	pw, ph := float64(panel.Dx()), float64(panel.Dy())
	dc.Push()
	dc.DrawRoundedRectangle(px, py, pw, ph, float64(w)*panelCornerRatio)
	dc.Clip()
	dc.SetColor(th.panel)
	dc.DrawRectangle(px, py, pw, ph)
	dc.Fill()
	dc.DrawImage(surface.Image(), panel.Min.X, panel.Min.Y)
	dc.ResetClip()
	dc.Pop()

	c.drawFooter(dc, fonts, footer, card)

	return Result{Image: dc.Image(), Pattern: []halftone.Stats{stats}}, nil
}

func (c *Composer) drawHeader(dc *gg.Context, fonts fontSet, rect image.Rectangle, card state.CardSettings, th theme) error {
	w := c.width()
	midY := float64(rect.Min.Y) + float64(rect.Dy())/2
	textSize := float64(w) * textRatio

	// Avatar glyph: head and shoulders.
	iconR := textSize * 0.5
	ix := float64(rect.Min.X) + iconR
	dc.SetColor(textColor)
	dc.DrawCircle(ix, midY-iconR*0.35, iconR*0.45)
	dc.Fill()
	dc.DrawEllipticalArc(ix, midY+iconR, iconR, iconR*0.75, math.Pi, 2*math.Pi)
	dc.Fill()

	dc.SetFontFace(face(fonts.sans, textSize))
	dc.DrawStringAnchored(FormatDate(c.now()), ix+iconR*1.6, midY, 0, 0.35)

	// Share code in the top-right corner.
	qrSize := rect.Dy()
	qr, err := render.GenerateQRCodeImage(sharePayload(card, c.now()), qrSize, mutedColor)
	if err != nil {
		return fmt.Errorf("share code: %w", err)
	}
	right := float64(rect.Max.X)
	if qr != nil {
		qx := rect.Max.X - qr.Bounds().Dx()
		dc.DrawImage(qr, qx, rect.Min.Y)
		right = float64(qx) - float64(w)*0.02
	}

	// Rarity pill.
	badgeSize := float64(w) * smallTextRatio
	dc.SetFontFace(face(fonts.sans, badgeSize))
	label := string(card.Rarity)
	if label == "" {
		label = string(state.Uncommon)
	}
	tw, _ := dc.MeasureString(label)
	padX := badgeSize
	bh := badgeSize * 2
	bw := tw + 2*padX
	bx := right - bw
	dc.SetColor(th.badgeBackground)
	dc.DrawRoundedRectangle(bx, midY-bh/2, bw, bh, bh/2)
	dc.Fill()
	dc.SetColor(th.badgeText)
	dc.DrawStringAnchored(label, bx+bw/2, midY, 0.5, 0.35)
	return nil
}

func (c *Composer) drawFooter(dc *gg.Context, fonts fontSet, rect image.Rectangle, card state.CardSettings) {
	w := c.width()
	midY := float64(rect.Min.Y) + float64(rect.Dy())/2
	textSize := float64(w) * textRatio

	dc.SetColor(textColor)
	dc.SetFontFace(face(fonts.mono, textSize))
	dc.DrawStringAnchored(card.Distance, float64(rect.Min.X), midY, 0, 0.35)

	// With a pace the time sits in the middle, otherwise on the right.
	timeRight := float64(rect.Max.X)
	if card.Pace != "" {
		timeRight = float64(rect.Min.X) + float64(rect.Dx())*0.7
		dc.SetColor(mutedColor)
		dc.SetFontFace(face(fonts.sans, float64(w)*smallTextRatio))
		dc.DrawStringAnchored("≫ "+card.Pace, float64(rect.Max.X), midY, 1, 0.35)
	}

	dc.SetColor(textColor)
	dc.SetFontFace(face(fonts.mono, textSize))
	tw, _ := dc.MeasureString(card.Time)
	dc.DrawStringAnchored(card.Time, timeRight, midY, 1, 0.35)

	// Clock glyph left of the time.
	r := textSize * 0.4
	cx := timeRight - tw - r*1.8
	dc.SetLineWidth(math.Max(1, textSize*0.09))
	dc.DrawCircle(cx, midY, r)
	dc.MoveTo(cx, midY-r*0.6)
	dc.LineTo(cx, midY)
	dc.LineTo(cx+r*0.45, midY+r*0.3)
	dc.Stroke()
}

func sharePayload(card state.CardSettings, now time.Time) string {
	payload := fmt.Sprintf("%s %s %s %s", defaultShareLabel, FormatDate(now), card.Distance, card.Time)
	if card.Pace != "" {
		payload += " " + card.Pace
	}
	return payload
}

// ComposeDeck draws all cards side by side on a transparent background.
func (c *Composer) ComposeDeck(settings state.Settings) (Result, error) {
	w, h := c.Size()
	n := len(settings.Cards)
	if n == 0 {
		return Result{Image: image.NewRGBA(image.Rect(0, 0, 0, 0))}, nil
	}
	gap := scaled(w, deckGapRatio)
	deckWidth := n*w + (n-1)*gap
	dst := image.NewRGBA(image.Rect(0, 0, deckWidth, h))
	dc := gg.NewContextForRGBA(dst)

	out := Result{Image: dst}
	for i, rect := range layout.Columns(dst.Bounds(), n, gap) {
		res, err := c.Compose(settings.Cards[i], settings.Pattern)
		if err != nil {
			return Result{}, fmt.Errorf("card %d: %w", i+1, err)
		}
		dc.DrawImage(res.Image, rect.Min.X, rect.Min.Y)
		out.Pattern = append(out.Pattern, res.Pattern...)
	}
	return out, nil
}

// ClampScale bounds an export scale factor.
func ClampScale(scale int) int {
	return min(max(scale, minExportScale), maxExportScale)
}

// Scale resizes img by an integer factor for high density exports.
func Scale(img image.Image, scale int) image.Image {
	scale = ClampScale(scale)
	if scale == 1 {
		return img
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.Lanczos)
}
