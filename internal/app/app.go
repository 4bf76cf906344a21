// Package app wires the settings store, the display and the HTTP shell into
// one process lifetime.
package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/halftone/internal/render"
	"github.com/rook-computer/halftone/internal/state"
	"github.com/rook-computer/halftone/internal/system"
	"github.com/rook-computer/halftone/internal/web"
)

type App struct {
	Store  *state.Store
	Render render.Renderer
	Web    web.Server
	Screen render.Screen
	Logger Logger
	Debug  bool

	// ExitOnF4 watches local keyboards and exits when F4 is pressed.
	ExitOnF4 bool

	screen  render.Screen
	exiting atomic.Bool
	exitCh  chan error
}

func New(store *state.Store, renderer render.Renderer, webServer web.Server, screen render.Screen) *App {
	return &App{Store: store, Render: renderer, Web: webServer, Screen: screen, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit makes Start return err. Only the first call counts.
func (a *App) Exit(err error) {
	if a.exitCh == nil || !a.exiting.CompareAndSwap(false, true) {
		return
	}
	select {
	case a.exitCh <- err:
	default:
	}
}

// Start shows Screen, serves the control page and repaints on every settings
// change until ctx is done or Exit is called.
func (a *App) Start(ctx context.Context) error {
	a.applyDefaults()

	if err := a.Render.Start(ctx); err != nil {
		a.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer a.Render.Stop()
	defer a.claimConsole()()

	if a.Screen != nil {
		if err := a.show(ctx, a.Screen); err != nil {
			return err
		}
		a.Render.RedrawWithState(a.Store.Snapshot())
	}
	defer a.hide()

	if a.Web != nil {
		if err := a.Web.Start(ctx); err != nil {
			a.Logger.Errorf("app", "web start error: %v", err)
			return err
		}
		defer a.Web.Stop()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	if a.ExitOnF4 {
		system.StartExitOnKey(loopCtx, a.Logger, system.KeyF4, func() { a.Exit(nil) })
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Render.RunLoop(loopCtx, a.Store)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-a.exitCh:
		return err
	}
}

func (a *App) applyDefaults() {
	if a.exitCh == nil {
		a.exitCh = make(chan error, 1)
	}
	a.exiting.Store(false)
	if a.Logger == nil {
		a.Logger = NoopLogger{}
	}
	if a.Store == nil {
		a.Store = state.NewStore()
	}
	if a.Render == nil {
		a.Render = &render.NoopRenderer{}
	}
	if fb, ok := a.Render.(*render.FBRenderer); ok {
		fb.Logger = a.Logger
		fb.Debug = a.Debug
	}
}

// claimConsole puts the VT into graphics mode when drawing to the framebuffer
// and returns the matching restore.
func (a *App) claimConsole() (restore func()) {
	if _, ok := a.Render.(*render.FBRenderer); !ok {
		return func() {}
	}
	_ = system.SetGraphicsModeWithLog(a.Logger)
	_ = system.HideCursorWithLog(a.Logger)
	return func() {
		_ = system.ShowCursorWithLog(a.Logger)
		_ = system.RestoreTextModeWithLog(a.Logger)
	}
}

func (a *App) show(ctx context.Context, screen render.Screen) error {
	a.hide()
	a.screen = screen
	a.Render.SetScreen(screen)
	return screen.Start(ctx)
}

func (a *App) hide() {
	if a.screen != nil {
		_ = a.screen.Stop()
		a.screen = nil
	}
}
