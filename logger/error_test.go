//nolint:err113 // Test file uses errors.New() for creating test errors
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateError(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, AnnotateError(nil, "key", "value"))
	})

	t.Run("keeps message and chain", func(t *testing.T) {
		t.Parallel()

		baseErr := errors.New("bad value")
		annotated := AnnotateError(baseErr, "file", "a.yaml", "index", 3)

		assert.Equal(t, "bad value", annotated.Error())
		require.ErrorIs(t, annotated, baseErr)
		require.ErrorIs(t, fmt.Errorf("wrapped: %w", annotated), baseErr)

		var se *slogError
		require.ErrorAs(t, annotated, &se)
		require.Len(t, se.attrs, 2)
		assert.Equal(t, "file", se.attrs[0].Key)
		assert.Equal(t, "index", se.attrs[1].Key)
	})
}

func TestSlogErrorLogger(t *testing.T) {
	t.Parallel()

	newLogger := func(buf *bytes.Buffer) *slog.Logger {
		return slog.New(&slogErrorLogger{
			inner: slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		})
	}

	t.Run("annotations become attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		err := AnnotateError(errors.New("bad value"), "file", "a.yaml")
		newLogger(&buf).Error("fixture failed", "error", err)

		assert.Contains(t, buf.String(), `error="bad value"`)
		assert.Contains(t, buf.String(), "file=a.yaml")
	})

	t.Run("plain errors and other attributes survive", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		newLogger(&buf).With("run_id", "r1").Info("done", "error", errors.New("plain"), "count", 2)

		assert.Contains(t, buf.String(), `error=plain`)
		assert.Contains(t, buf.String(), "count=2")
		assert.Contains(t, buf.String(), "run_id=r1")
	})

	t.Run("groups are delegated", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		newLogger(&buf).WithGroup("set").Info("stats", "len", 3)

		assert.Contains(t, buf.String(), "set.len=3")
	})
}

func TestTeeHandler(t *testing.T) {
	t.Parallel()

	var info, errs bytes.Buffer

	tee := &teeHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	}}

	logger := slog.New(tee).With("k", "v")

	assert.False(t, tee.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, tee.Enabled(t.Context(), slog.LevelInfo))

	logger.Info("info")
	logger.Error("boom")

	assert.Contains(t, info.String(), "msg=info")
	assert.Contains(t, info.String(), "msg=boom")
	assert.NotContains(t, errs.String(), "msg=info")
	assert.Contains(t, errs.String(), "k=v")
}

func TestAnnotations(t *testing.T) {
	t.Parallel()

	inner := AnnotateError(errors.New("bad value"), "index", 2)
	outer := AnnotateError(fmt.Errorf("a.yaml: %w", inner), "file", "a.yaml")

	attrs := annotations(outer)
	require.Len(t, attrs, 2)
	assert.Equal(t, "file", attrs[0].Key)
	assert.Equal(t, "index", attrs[1].Key)

	assert.Empty(t, annotations(errors.New("plain")))

	var buf bytes.Buffer

	slog.New(&slogErrorLogger{inner: slog.NewTextHandler(&buf, nil)}).Error("failed", "error", outer)
	assert.Contains(t, buf.String(), `error="a.yaml: bad value"`)
	assert.Contains(t, buf.String(), "file=a.yaml index=2")
}
