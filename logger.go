package lazymode

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with lazymode-specific helpers.
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
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))}
}

// LogTrain logs a training run.
func (l *Logger) LogTrain(ctx context.Context, examples, vocabulary int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "training failed",
			"examples", examples,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "training completed",
		"examples", examples,
		"vocabulary", vocabulary,
		"duration", d,
	)
}

// LogPredict logs a prediction.
func (l *Logger) LogPredict(ctx context.Context, fallback bool, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "predict failed", "error", err)
		return
	}
	l.DebugContext(ctx, "predict completed",
		"fallback", fallback,
		"duration", d,
	)
}

// LogSave logs a snapshot save.
func (l *Logger) LogSave(ctx context.Context, name string, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "model saved",
		"name", name,
		"duration", d,
	)
}

// LogLoad logs a snapshot load.
func (l *Logger) LogLoad(ctx context.Context, name string, examples int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "model loaded",
		"name", name,
		"examples", examples,
	)
}
