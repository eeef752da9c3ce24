// Package logging builds the slog loggers used across gmtools and lets tests
// capture their output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu            sync.RWMutex
	level         = new(slog.LevelVar)
	defaultLogger = New(os.Stderr, level)
)

// New returns a text logger writing to w at the given level.
func New(w io.Writer, lvl slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Default returns the process-wide logger.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(lvl slog.Level) {
	level.Set(lvl)
}

// Redirect sends the process-wide logger's output to w. A cleanup function
// that undoes the redirect is returned.
func Redirect(w io.Writer) func() {
	mu.Lock()
	old := defaultLogger
	defaultLogger = New(w, level)
	mu.Unlock()

	return func() {
		mu.Lock()
		defaultLogger = old
		mu.Unlock()
	}
}

// Bracket runs fn with the process-wide level set to lvl, then restores it.
func Bracket(lvl slog.Level, fn func()) {
	old := level.Level()
	level.Set(lvl)
	defer level.Set(old)
	fn()
}

// ParseLevel maps debug, info, warn and error (any case) to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
