package sparsewire

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with codec-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
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

// WithRows adds a row-count field to the logger.
func (l *Logger) WithRows(rows int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", rows),
	}
}

// WithDim adds a dimension field to the logger.
func (l *Logger) WithDim(dim int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("dim", dim),
	}
}

// LogEncode logs a batch encode operation.
func (l *Logger) LogEncode(ctx context.Context, rows int, dim int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "encode completed",
			"rows", rows,
			"dim", dim,
		)
	}
}

// LogDecode logs a batch decode operation.
func (l *Logger) LogDecode(ctx context.Context, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "decode failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "decode completed",
			"rows", rows,
		)
	}
}

// LogPayload logs a payload marshal/unmarshal operation.
func (l *Logger) LogPayload(ctx context.Context, op string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "payload "+op+" failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "payload "+op+" completed",
			"bytes", size,
		)
	}
}
