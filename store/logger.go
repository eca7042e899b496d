package store

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with store-specific helpers so every operation
// logs with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

// LogLoad logs the initial state of a store.
func (l *Logger) LogLoad(ctx context.Context, source string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed", "source", source, "error", err)
		return
	}
	l.InfoContext(ctx, "store loaded", "source", source, "count", count)
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(ctx context.Context, id string, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed", "id", id, "dimension", dimension, "error", err)
		return
	}
	l.DebugContext(ctx, "insert completed", "id", id, "dimension", dimension)
}

// LogDelete logs a delete operation and how many records it removed.
func (l *Logger) LogDelete(ctx context.Context, id string, removed int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed", "id", id, "removed", removed, "error", err)
		return
	}
	l.DebugContext(ctx, "delete completed", "id", id, "removed", removed)
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed", "k", k, "error", err)
		return
	}
	l.DebugContext(ctx, "search completed", "k", k, "results", resultsFound)
}

// LogFlush logs a write of the full record sequence.
func (l *Logger) LogFlush(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "flush failed", "count", count, "error", err)
		return
	}
	l.DebugContext(ctx, "flush completed", "count", count)
}
