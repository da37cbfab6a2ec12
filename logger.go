package paircorr

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with paircorr-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRun tags every entry with the run id.
func (l *Logger) WithRun(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", id),
	}
}

// LogStage logs the end of a pipeline stage.
func (l *Logger) LogStage(ctx context.Context, stage string, items int64, elapsed time.Duration) {
	l.DebugContext(ctx, "stage completed",
		"stage", stage,
		"items", items,
		"elapsed", elapsed,
	)
}

// LogNaNFiltered logs the pairs dropped because their statistic is
// undefined. Nothing is logged when count is zero.
func (l *Logger) LogNaNFiltered(ctx context.Context, count int64) {
	if count == 0 {
		return
	}
	l.WarnContext(ctx, "pairs produced NaN values because an input row is constant; they were filtered",
		"count", count,
	)
}

// LogRun logs the outcome of a run.
func (l *Logger) LogRun(ctx context.Context, res *Result, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "analysis failed",
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "analysis completed",
		"evaluated", res.Evaluated,
		"nan_filtered", res.NaNFiltered,
		"before_truncation", res.CountBeforeTruncation,
		"results", len(res.Records),
		"materialized", res.Materialized,
		"elapsed", elapsed,
	)
}
