package dotmatrix

import "context"
import "log/slog"
import "sync/atomic"

// A slog.Handler that discards everything. Enabled returns false so
// callers skip message formatting entirely.
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

// Sets the logger for dotmatrix and its subpackages. By default,
// nothing is logged. Passing nil restores the silent default.
// Safe for concurrent use.
//
// Levels used:
//   - [slog.LevelDebug]: glyph render failures and fallbacks.
//   - [slog.LevelInfo]: lifecycle events (cache cleared, server started).
//   - [slog.LevelWarn]: rejected or normalized requests.
func SetLogger(logger *slog.Logger) {
	if logger == nil { logger = newNopLogger() }
	loggerPtr.Store(logger)
}

// Returns the current package logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
