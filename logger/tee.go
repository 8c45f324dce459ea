package logger

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler hands each record to every handler that accepts its level.
type teeHandler struct {
	handlers []slog.Handler
}

var _ slog.Handler = (*teeHandler)(nil)

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (t *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error

	for _, h := range t.handlers {
		if h.Enabled(ctx, record.Level) {
			errs = append(errs, h.Handle(ctx, record.Clone()))
		}
	}

	return errors.Join(errs...)
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}

	return &teeHandler{handlers: handlers}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		handlers[i] = h.WithGroup(name)
	}

	return &teeHandler{handlers: handlers}
}
