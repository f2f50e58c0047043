package fcago

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with fcago-specific context.
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
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContextName adds the context name to the logger.
func (l *Logger) WithContextName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("context", name),
	}
}

// WithShape adds the context shape to the logger.
func (l *Logger) WithShape(objects, attributes int) *Logger {
	return &Logger{
		Logger: l.Logger.With("objects", objects, "attributes", attributes),
	}
}

// LogContext logs the construction of a context.
func (l *Logger) LogContext(name string, objects, attributes int, err error) {
	if err != nil {
		l.Error("context construction failed",
			"context", name,
			"objects", objects,
			"attributes", attributes,
			"error", err,
		)
	} else {
		l.Debug("context constructed",
			"context", name,
			"objects", objects,
			"attributes", attributes,
		)
	}
}

// LogEnumerate logs a concept enumeration run.
func (l *Logger) LogEnumerate(ctx context.Context, concepts int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "concept enumeration failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "concept enumeration completed",
			"concepts", concepts,
		)
	}
}

// LogCoverStep logs the selection of one factor.
func (l *Logger) LogCoverStep(ctx context.Context, step, index, coverage, uncovered int) {
	l.DebugContext(ctx, "factor selected",
		"step", step,
		"index", index,
		"coverage", coverage,
		"uncovered", uncovered,
	)
}

// LogCover logs a finished cover factorization.
func (l *Logger) LogCover(ctx context.Context, factors, uncovered int, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "cover failed",
			"factors", factors,
			"error", err,
		)
	case uncovered > 0:
		l.WarnContext(ctx, "cover incomplete",
			"factors", factors,
			"uncovered", uncovered,
		)
	default:
		l.InfoContext(ctx, "cover completed",
			"factors", factors,
		)
	}
}

// LogSnapshot logs a snapshot write or read.
func (l *Logger) LogSnapshot(op string, bytes int64, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"op", op,
			"error", err,
		)
	} else {
		l.Debug("snapshot completed",
			"op", op,
			"bytes", bytes,
		)
	}
}
