package apis

import (
	"context"

	"dirpx.dev/dcast/apis/level"
)

// Logger is the producer-facing logging surface.
// Implementations must be safe for concurrent use and must never return
// errors from emit paths: a record that cannot be delivered is dropped
// and counted, not reported.
type Logger interface {
	// Enabled reports whether the given level would be logged right now.
	// This allows callers to skip expensive message construction.
	Enabled(lvl level.Level) bool

	// Trace logs a trace-level message with fmt.Sprintf semantics.
	Trace(format string, args ...any)

	// Debug logs a debug-level message.
	Debug(format string, args ...any)

	// Info logs an info-level message.
	Info(format string, args ...any)

	// Warn logs a warning message.
	Warn(format string, args ...any)

	// Error logs an error message.
	Error(format string, args ...any)

	// Log emits a record with an explicit level and target. The target
	// overrides the logger's default (normally the caller's package path).
	Log(lvl level.Level, target, format string, args ...any)

	// Flush pushes buffered records towards all sinks. In dev-mode it
	// blocks until every sink committed; otherwise it only enqueues.
	Flush(ctx context.Context) error
}

// TargetLogger is an optional extension for loggers that support a
// pre-bound target path.
type TargetLogger interface {
	Logger

	// WithTarget returns a derived logger whose records carry the given
	// target. The returned logger must be safe for concurrent use.
	WithTarget(target string) Logger
}
