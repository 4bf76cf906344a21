package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/halftone/internal/state"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const defaultFBDevice = "/dev/fb0"

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	Device string

	fbDev       *fb.Device
	canvas      *image.RGBA
	fontFace    font.Face
	running     atomic.Bool
	current     Screen
	lastVersion uint64
	Logger      interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
	Debug bool
}

func NewFBRenderer() *FBRenderer { return &FBRenderer{Device: defaultFBDevice} }

func (r *FBRenderer) Start(ctx context.Context) error {
	device := r.Device
	if device == "" {
		device = defaultFBDevice
	}
	dev, err := fb.Open(device)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", device, err)
	}
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}

	r.canvas = image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	r.fontFace = loadFace(32, r.Logger)

	r.running.Store(true)
	return nil
}

// loadFace parses the bundled Go Mono font, falling back to basicfont.
func loadFace(size float64, logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}) font.Face {
	fnt, err := opentype.Parse(gomono.TTF)
	if err != nil {
		if logger != nil {
			logger.Errorf("fb", "font parse failed, using basicfont: %v", err)
		}
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 96, Hinting: font.HintingFull})
	if err != nil {
		if logger != nil {
			logger.Errorf("fb", "font face create failed, using basicfont: %v", err)
		}
		return basicfont.Face7x13
	}
	return face
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

// SetScreen sets the current logical screen to be drawn.
func (r *FBRenderer) SetScreen(screen Screen) { r.current = screen }

// RedrawWithState draws the current screen and blits it.
func (r *FBRenderer) RedrawWithState(snap state.Settings) {
	if !r.running.Load() || r.current == nil || r.fbDev == nil {
		return
	}
	start := time.Now()
	r.FillBackground()
	r.current.Draw(r, snap)
	_ = blitToFB(r.fbDev, r.canvas)
	if r.Logger != nil && r.Debug {
		r.Logger.Infof("fb", "redraw done in %s", time.Since(start))
	}
}

// RunLoop polls the store at ~30 FPS and redraws whenever the settings
// version changed, so the most recent mutation always wins.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store) {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			version := store.Version()
			if version == r.lastVersion {
				continue
			}
			r.lastVersion = version
			r.RedrawWithState(store.Snapshot())
		}
	}
}

func (r *FBRenderer) Size() (int, int) { return CanvasWidth, CanvasHeight }

func (r *FBRenderer) FillBackground() {
	draw.Draw(r.canvas, r.canvas.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
}

func (r *FBRenderer) face() font.Face {
	if r.fontFace == nil {
		r.fontFace = basicfont.Face7x13
		if r.Logger != nil {
			r.Logger.Errorf("fb", "fontFace nil at draw, defaulting to basicfont")
		}
	}
	return r.fontFace
}

func (r *FBRenderer) MeasureText(text string, style TextStyle) TextMetrics {
	return measure(r.face(), text)
}

func (r *FBRenderer) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	face := r.face()
	metrics := measure(face, text)
	switch style.Align {
	case TextAlignCenter:
		x -= metrics.Width / 2
	case TextAlignRight:
		x -= metrics.Width
	}
	fg := style.Color
	if fg == nil {
		fg = Foreground
	}
	drawer := &font.Drawer{Dst: r.canvas, Src: &image.Uniform{C: fg}, Face: face}
	drawer.Dot = fixed.P(x, y+metrics.Ascent)
	drawer.DrawString(text)
	return metrics
}

func measure(face font.Face, text string) TextMetrics {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	return TextMetrics{
		Width:  font.MeasureString(face, text).Ceil(),
		Height: ascent + m.Descent.Ceil(),
		Ascent: ascent,
	}
}

func (r *FBRenderer) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil {
		return
	}
	b := img.Bounds()
	dst := ScaledRect(b.Dx(), b.Dy(), rect, mode)
	clip := dst.Intersect(rect).Intersect(r.canvas.Bounds())
	if clip.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(r.canvas.SubImage(clip).(*image.RGBA), dst, img, b, xdraw.Over, nil)
}

// blitToFB nearest-neighbour scales the logical canvas onto the device.
func blitToFB(dev *fb.Device, canvas *image.RGBA) error {
	if dev == nil {
		return nil
	}
	bounds := dev.Bounds()
	cols := make([]int, bounds.Dx())
	for x := range cols {
		cols[x] = x * CanvasWidth / len(cols)
	}
	for y := 0; y < bounds.Dy(); y++ {
		sy := y * CanvasHeight / bounds.Dy()
		for x, sx := range cols {
			p := canvas.RGBAAt(sx, sy)
			p.A = 0xFF
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, p)
		}
	}
	return nil
}
