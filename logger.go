/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/suparena/memstore/keys"
)

// Logger wraps slog.Logger with memstore-specific operation helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
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

// NewJSONLogger creates a Logger that writes JSON records to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that writes human-readable records to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithSet adds the entity set name to every record.
func (l *Logger) WithSet(set string) *Logger {
	return &Logger{
		Logger: l.Logger.With("set", set),
	}
}

// LogCreate logs a create operation.
func (l *Logger) LogCreate(ctx context.Context, set string, key keys.Tuple, generated bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "create failed",
			"set", set,
			"key", key.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "create completed",
			"set", set,
			"key", key.String(),
			"generated", generated,
		)
	}
}

// LogCollision logs a key collision that is resolved by regeneration.
func (l *Logger) LogCollision(ctx context.Context, set string, taken, next keys.Tuple) {
	l.DebugContext(ctx, "key collision, regenerated",
		"set", set,
		"taken", taken.String(),
		"key", next.String(),
	)
}

// LogUpdate logs an update operation.
func (l *Logger) LogUpdate(ctx context.Context, set string, key keys.Tuple, err error) {
	if err != nil {
		l.ErrorContext(ctx, "update failed",
			"set", set,
			"key", key.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "update completed",
			"set", set,
			"key", key.String(),
		)
	}
}

// LogPopulate logs a bulk load of fixture rows.
func (l *Logger) LogPopulate(ctx context.Context, set string, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "populate completed with failures",
			"set", set,
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.InfoContext(ctx, "populate completed",
			"set", set,
			"count", count,
		)
	}
}
