package ggo

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all records. Enabled returns
// false so callers skip formatting entirely; disabled logging costs next
// to nothing.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures logging for ggo and its sub-packages. By default
// ggo produces no log output. Pass nil to restore the silent default.
//
// SetLogger stores the logger atomically and is safe to call from any
// goroutine, including while pool computations are logging.
//
// Levels used by ggo:
//   - [slog.LevelDebug]: per-frame diagnostics (tick timing, spawn counts)
//   - [slog.LevelInfo]: lifecycle events (context created, shutdown)
//   - [slog.LevelWarn]: non-fatal issues (config fell back to defaults)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger, never nil.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
