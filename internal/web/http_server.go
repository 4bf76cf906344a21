package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	defaultListenAddr = ":80"
	readHeaderTimeout = 5 * time.Second
	shutdownGrace     = 5 * time.Second
)

var (
	errServerStopped = errors.New("web: server already stopped")
	errNoHandler     = errors.New("web: no handler configured")
)

// HTTPServer runs Handler until Stop is called or the Start context ends.
// Once stopped it cannot be restarted.
type HTTPServer struct {
	// Addr is the configured address; after Start it holds the bound one.
	Addr    string
	DevMode bool
	Handler http.Handler
	Logger  sysLogger

	mu      sync.Mutex
	srv     *http.Server
	stopped bool
}

// sysLogger matches the component-tagged logger used across the app.
type sysLogger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

func NewHTTPServer(cfg ServerConfig) *HTTPServer {
	return &HTTPServer{Addr: cfg.ListenAddr, DevMode: cfg.DevMode}
}

func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.stopped:
		return errServerStopped
	case s.srv != nil:
		return nil
	case s.Handler == nil:
		return errNoHandler
	}

	addr := s.Addr
	if addr == "" {
		addr = defaultListenAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", addr, err)
	}

	handler := s.Handler
	if s.DevMode {
		handler = WithDevCORS(handler)
	}
	s.srv = &http.Server{Handler: handler, ReadHeaderTimeout: readHeaderTimeout}
	s.Addr = ln.Addr().String()
	s.infof("serving control page on %s (dev=%t)", s.Addr, s.DevMode)

	go s.serve(s.srv, ln)
	context.AfterFunc(ctx, func() { _ = s.Stop() })
	return nil
}

func (s *HTTPServer) serve(srv *http.Server, ln net.Listener) {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errorf("serve: %v", err)
	}
}

func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	srv := s.srv
	already := s.stopped
	s.srv, s.stopped = nil, true
	s.mu.Unlock()

	if already || srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (s *HTTPServer) infof(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Infof("web", format, args...)
	}
}

func (s *HTTPServer) errorf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Errorf("web", format, args...)
	}
}
