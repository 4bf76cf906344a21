package app

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/halftone/internal/render"
	"github.com/rook-computer/halftone/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	screen   render.Screen
	redraws  []state.Settings
	looped   chan struct{}
	startErr error
}

func (f *fakeRenderer) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
	return f.startErr
}

func (f *fakeRenderer) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

func (f *fakeRenderer) SetScreen(screen render.Screen) { f.screen = screen }

func (f *fakeRenderer) RunLoop(ctx context.Context, store *state.Store) {
	close(f.looped)
	<-ctx.Done()
}

func (f *fakeRenderer) RedrawWithState(snap state.Settings) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.redraws = append(f.redraws, snap)
}

type fakeScreen struct{ started, stopped int }

func (s *fakeScreen) Start(ctx context.Context) error          { s.started++; return nil }
func (s *fakeScreen) Stop() error                              { s.stopped++; return nil }
func (s *fakeScreen) Draw(d render.Drawer, st state.Settings) {}

type fakeServer struct{ started, stopped bool }

func (s *fakeServer) Start(ctx context.Context) error { s.started = true; return nil }
func (s *fakeServer) Stop() error                     { s.stopped = true; return nil }

func TestAppRunsUntilExit(t *testing.T) {
	renderer := &fakeRenderer{looped: make(chan struct{})}
	screen := &fakeScreen{}
	server := &fakeServer{}
	a := New(state.NewStore(), renderer, server, screen)

	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()

	select {
	case <-renderer.looped:
	case <-time.After(5 * time.Second):
		t.Fatal("render loop not started")
	}
	wantErr := errors.New("bye")
	a.Exit(wantErr)
	a.Exit(errors.New("ignored"))

	select {
	case err := <-done:
		assert.Equal(t, wantErr, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not exit")
	}

	assert.True(t, renderer.started)
	assert.True(t, renderer.stopped)
	assert.Same(t, screen, renderer.screen)
	assert.Len(t, renderer.redraws, 1)
	assert.Equal(t, 1, screen.started)
	assert.Equal(t, 1, screen.stopped)
	assert.True(t, server.started)
	assert.True(t, server.stopped)
}

func TestAppStopsOnContextCancel(t *testing.T) {
	renderer := &fakeRenderer{looped: make(chan struct{})}
	a := New(state.NewStore(), renderer, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-renderer.looped
		cancel()
	}()
	err := a.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, renderer.redraws)
}

func TestAppRendererStartError(t *testing.T) {
	renderer := &fakeRenderer{looped: make(chan struct{}), startErr: errors.New("no framebuffer")}
	a := New(state.NewStore(), renderer, nil, nil)
	assert.EqualError(t, a.Start(context.Background()), "no framebuffer")
}

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.Infof("card", "drew %d dots", 12)
	l.Errorf("web", "failed: %v", errors.New("boom"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Regexp(t, regexp.MustCompile(`^\S+ \[INFO\] card: drew 12 dots$`), string(lines[0]))
	assert.Regexp(t, regexp.MustCompile(`^\S+ \[ERROR\] web: failed: boom$`), string(lines[1]))
}
