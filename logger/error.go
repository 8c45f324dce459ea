package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// AnnotateError wraps an error with structured logging attributes (slog key-value pairs).
// When the returned error is logged through a logger built by this package,
// the attributes are pulled out of the error and logged alongside it.
//
// Args should be key-value pairs compatible with slog (string keys followed by values).
//
//	return AnnotateError(err, "file", path, "line", n)
//
// Returns nil if err is nil.
func AnnotateError(err error, args ...any) error {
	if err == nil {
		return nil
	}

	r := slog.NewRecord(time.Now(), slog.LevelDebug, "", 0)
	r.Add(args...)

	var errAttrs []slog.Attr

	r.Attrs(func(attr slog.Attr) bool {
		errAttrs = append(errAttrs, attr)

		return true
	})

	return &slogError{
		err:   err,
		attrs: errAttrs,
	}
}

// slogError wraps an error with structured logging attributes.
// It supports errors.Is and errors.As through Unwrap.
type slogError struct {
	err   error
	attrs []slog.Attr
}

func (s *slogError) Error() string {
	return s.err.Error()
}

func (s *slogError) Unwrap() error {
	return s.err
}

var _ error = (*slogError)(nil)

// slogErrorLogger is a slog.Handler decorator that extracts structured attributes
// from annotated errors (created via AnnotateError) and includes them in log output.
type slogErrorLogger struct {
	inner slog.Handler
}

var _ slog.Handler = (*slogErrorLogger)(nil)

func (s *slogErrorLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return s.inner.Enabled(ctx, level)
}

// annotations collects the attributes of every annotated error in err's chain,
// outermost first.
func annotations(err error) []slog.Attr {
	var attrs []slog.Attr

	for {
		var se *slogError
		if !errors.As(err, &se) {
			return attrs
		}

		attrs = append(attrs, se.attrs...)
		err = se.err
	}
}

// Handle appends the attributes of annotated errors to the record.
func (s *slogErrorLogger) Handle(ctx context.Context, record slog.Record) error {
	var errAttrs []slog.Attr

	record.Attrs(func(attr slog.Attr) bool {
		if err, ok := attr.Value.Any().(error); ok {
			errAttrs = append(errAttrs, annotations(err)...)
		}

		return true
	})

	if len(errAttrs) == 0 {
		return s.inner.Handle(ctx, record)
	}

	r := record.Clone()
	r.AddAttrs(errAttrs...)

	return s.inner.Handle(ctx, r)
}

func (s *slogErrorLogger) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &slogErrorLogger{inner: s.inner.WithAttrs(attrs)}
}

func (s *slogErrorLogger) WithGroup(name string) slog.Handler {
	return &slogErrorLogger{inner: s.inner.WithGroup(name)}
}
