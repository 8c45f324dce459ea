// Package envutil reads typed configuration from environment variables.
//
//	workers := envutil.Int("RBTSET_WORKERS", envutil.Default(4)).ValueOrElse(4)
//
// A Reader carries the key, whether the variable was set, the parsed value
// and any parse error, so callers decide how strict to be.
package envutil

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// get returns a Reader for the given environment variable key.
func get(key string) Reader[string] {
	val, ok := os.LookupEnv(key)

	return Reader[string]{
		key:     key,
		present: ok,
		value:   val,
	}
}

// NewReader returns a Reader for the given raw data. It behaves exactly like
// a Reader built from the environment, which makes it handy in tests.
func NewReader[T any](key string, present bool, err error, value T) Reader[T] {
	return Reader[T]{
		key:     key,
		present: present,
		value:   value,
		err:     err,
	}
}

func apply[T any](rdr Reader[T], opts []Option[T]) Reader[T] {
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// String returns a Reader for the given environment variable key.
func String(key string, opts ...Option[string]) Reader[string] {
	return apply(get(key), opts)
}

func Bool(key string, opts ...Option[bool]) Reader[bool] {
	return apply(Map(get(key), func(s string) (bool, error) {
		return strconv.ParseBool(strings.TrimSpace(s))
	}), opts)
}

func Int(key string, opts ...Option[int]) Reader[int] {
	return apply(Map(get(key), func(s string) (int, error) {
		return strconv.Atoi(strings.TrimSpace(s))
	}), opts)
}

func Duration(key string, opts ...Option[time.Duration]) Reader[time.Duration] {
	return apply(Map(get(key), func(s string) (time.Duration, error) {
		return time.ParseDuration(strings.TrimSpace(s))
	}), opts)
}

// SlogLevel accepts the names understood by slog.Level ("debug", "INFO",
// "warn+2", ...), ignoring surrounding space.
func SlogLevel(key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	return apply(Map(get(key), func(s string) (slog.Level, error) {
		var level slog.Level

		err := level.UnmarshalText([]byte(strings.TrimSpace(s)))

		return level, err
	}), opts)
}

// OneOf reads a lower-cased string that must be one of allowed.
func OneOf(key string, allowed []string, opts ...Option[string]) Reader[string] {
	return apply(Map(get(key), func(s string) (string, error) {
		s = strings.ToLower(strings.TrimSpace(s))
		if !slices.Contains(allowed, s) {
			return s, fmt.Errorf("%q is not one of %s", s, strings.Join(allowed, ", "))
		}

		return s, nil
	}), opts)
}
