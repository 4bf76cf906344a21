package app

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger tags every entry with the component that produced it ("card",
// "web", "fb", ...).
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes "<RFC3339> [LEVEL] component: message" lines. Copies
// share the lock, so it is safe for concurrent use.
type FileLogger struct {
	mu *sync.Mutex
	w  io.Writer
}

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{mu: &sync.Mutex{}, w: w} }

func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.log("INFO", component, format, args...)
}

func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.log("ERROR", component, format, args...)
}

func (l FileLogger) log(level, component, format string, args ...interface{}) {
	if l.w == nil {
		return
	}
	line := fmt.Sprintf("%s [%s] %s: %s\n", time.Now().Format(time.RFC3339), level, component, fmt.Sprintf(format, args...))
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	_, _ = io.WriteString(l.w, line)
}
