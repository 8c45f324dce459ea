package envutil_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/amp-labs/rbtset/envutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		t.Setenv("RBTSET_TEST_STRING", "value")

		got, err := envutil.String("RBTSET_TEST_STRING").Value()
		require.NoError(t, err)
		assert.Equal(t, "value", got)
	})

	t.Run("missing", func(t *testing.T) {
		rdr := envutil.String("RBTSET_TEST_STRING_MISSING")

		_, err := rdr.Value()
		require.ErrorIs(t, err, envutil.ErrEnvVarMissing)
		assert.False(t, rdr.HasValue())
		assert.Equal(t, "RBTSET_TEST_STRING_MISSING=<not set>", rdr.String())
	})

	t.Run("default", func(t *testing.T) {
		got, err := envutil.String("RBTSET_TEST_STRING_MISSING", envutil.Default("fallback")).Value()
		require.NoError(t, err)
		assert.Equal(t, "fallback", got)
	})
}

func TestTypedReaders(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		t.Setenv("RBTSET_TEST_INT", " 12 ")

		assert.Equal(t, 12, envutil.Int("RBTSET_TEST_INT").ValueOrElse(0))
	})

	t.Run("int parse error falls back", func(t *testing.T) {
		t.Setenv("RBTSET_TEST_INT", "twelve")

		rdr := envutil.Int("RBTSET_TEST_INT", envutil.Default(4))
		assert.True(t, rdr.HasError())
		assert.Equal(t, 4, rdr.ValueOrElse(4))

		_, err := rdr.Value()
		require.ErrorIs(t, err, envutil.ErrBadEnvVar)
	})

	t.Run("bool", func(t *testing.T) {
		t.Setenv("RBTSET_TEST_BOOL", "true")

		assert.True(t, envutil.Bool("RBTSET_TEST_BOOL").ValueOrElse(false))
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("RBTSET_TEST_DURATION", "1500ms")

		assert.Equal(t, 1500*time.Millisecond, envutil.Duration("RBTSET_TEST_DURATION").ValueOrElse(0))
	})

	t.Run("slog level", func(t *testing.T) {
		t.Setenv("RBTSET_TEST_LEVEL", " debug ")

		assert.Equal(t, slog.LevelDebug, envutil.SlogLevel("RBTSET_TEST_LEVEL").ValueOrElse(slog.LevelInfo))
	})

	t.Run("one of", func(t *testing.T) {
		t.Setenv("RBTSET_TEST_CODEC", "GZIP")

		allowed := []string{"none", "gzip"}
		assert.Equal(t, "gzip", envutil.OneOf("RBTSET_TEST_CODEC", allowed).ValueOrElse("none"))

		t.Setenv("RBTSET_TEST_CODEC", "rar")
		assert.True(t, envutil.OneOf("RBTSET_TEST_CODEC", allowed).HasError())
	})
}

var errTooSmall = errors.New("too small")

func TestValidate(t *testing.T) {
	t.Parallel()

	positive := envutil.Validate(func(n int) error {
		if n < 1 {
			return errTooSmall
		}

		return nil
	})

	rdr := positive(envutil.NewReader("WORKERS", true, nil, 0))
	_, err := rdr.Value()
	require.ErrorIs(t, err, errTooSmall)

	rdr = positive(envutil.NewReader("WORKERS", true, nil, 3))
	got, err := rdr.Value()
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Equal(t, "WORKERS=3", rdr.String())
	assert.Equal(t, "WORKERS", rdr.Key())
}
