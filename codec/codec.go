// Package codec wraps writers and readers with the compression formats
// supported for DOT dumps and fixture files.
//
//	w, err := codec.NewWriter(f, "zstd")
//	...
//	defer w.Close()
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	rbterrors "github.com/amp-labs/rbtset/errors"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var ErrUnknownCodec = rbterrors.ErrUnknownCodec

const (
	None   = "none"
	Gzip   = "gzip"
	Zstd   = "zstd"
	LZ4    = "lz4"
	Brotli = "br"
)

var extensions = map[string]string{ //nolint:gochecknoglobals
	None:   "",
	Gzip:   ".gz",
	Zstd:   ".zst",
	LZ4:    ".lz4",
	Brotli: ".br",
}

// Names returns the supported codec names, sorted.
func Names() []string {
	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func normalize(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return None, nil
	}

	if _, ok := extensions[name]; !ok {
		return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownCodec, name, strings.Join(Names(), ", "))
	}

	return name, nil
}

// Extension returns the file suffix for the codec, including the dot.
// The none codec has no suffix.
func Extension(name string) (string, error) {
	name, err := normalize(name)
	if err != nil {
		return "", err
	}

	return extensions[name], nil
}

// FromPath returns the codec whose extension path ends with, or none.
func FromPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	for name, e := range extensions {
		if e != "" && e == ext {
			return name
		}
	}

	return None
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter compresses everything written to the result into w. Close
// flushes the compressor but never closes w.
func NewWriter(w io.Writer, name string) (io.WriteCloser, error) {
	name, err := normalize(name)
	if err != nil {
		return nil, err
	}

	switch name {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("creating zstd writer: %w", err)
		}

		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Brotli:
		return brotli.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()

	return nil
}

// NewReader decompresses r. Close releases the decompressor but never
// closes r.
func NewReader(r io.Reader, name string) (io.ReadCloser, error) {
	name, err := normalize(name)
	if err != nil {
		return nil, err
	}

	switch name {
	case Gzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}

		return gz, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}

		return zstdReadCloser{dec}, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}
