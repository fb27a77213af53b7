package labels

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while tile workers publish labels.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for labels and its sub-packages.
// By default, labels produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by labels:
//   - [slog.LevelDebug]: per-frame summaries (occlusion counts, deaths, sweeps)
//   - [slog.LevelInfo]: source lifecycle (published, invalidated, rebuilt)
//   - [slog.LevelWarn]: rejected publications (unknown or dead parents)
//
// Example:
//
//	labels.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by labels.
// Sub-packages (occlusion/, measure/) call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
