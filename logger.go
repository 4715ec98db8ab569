package dagset

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dagset-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogBatchLookup logs a batched id-to-vertex lookup.
func (l *Logger) LogBatchLookup(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch vertex lookup failed",
			"ids", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch vertex lookup completed",
			"ids", count,
		)
	}
}
