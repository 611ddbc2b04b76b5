package paint

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/paint/atlas"
	"github.com/gogpu/paint/text"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for paint and all its sub-packages.
// By default, paint produces no log output. Call SetLogger to enable it.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by paint:
//   - [slog.LevelDebug]: internal diagnostics (mesh splits, atlas growth,
//     cache flushes)
//   - [slog.LevelWarn]: non-fatal issues (atlas full, unknown fonts,
//     degenerate input dropped)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	paint.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	atlas.SetLogger(l)
	text.SetLogger(l)
}

// Logger returns the current logger used by paint.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
