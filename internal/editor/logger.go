package editor

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by the editor package.
// By default the package produces no log output. Passing nil restores the
// silent default. SetLogger is safe for concurrent use.
//
// Log levels used:
//   - [slog.LevelDebug]: per-render diagnostics (target, bounds, crop, elapsed time)
//   - [slog.LevelWarn]: inputs that were coerced (non-finite rotation angles)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the logger currently used by the editor package.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
