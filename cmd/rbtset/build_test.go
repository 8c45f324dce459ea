package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amp-labs/rbtset/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var logs, out bytes.Buffer

	a := &app{logOutput: &logs}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.ExecuteContext(t.Context())
	require.NoError(t, a.teardown(t.Context()))

	return out.String() + logs.String(), err
}

func TestBuild(t *testing.T) { //nolint:paralleltest
	t.Setenv("LOG_LEVEL", "debug")

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "dots")

	ints := writeFixture(t, in, "ints.yaml", "kind: int\ninsert: [2, 1, 3]\n")
	ranges := writeFixture(t, in, "ranges.yml", "kind: range\ninsert: [\"0..2\", \"2..5\"]\nrepack: true\n")

	output, err := execute(t, "build", "--out", out, ints, ranges)
	require.NoError(t, err, output)

	assert.Contains(t, output, "build finished")
	assert.Contains(t, output, "run_id=")

	dot, err := os.ReadFile(filepath.Join(out, "ints.dot"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(dot), "graph RBTreeSet {\n"))
	assert.Contains(t, string(dot), `Node1 [label="2", color=black]`)

	dot, err = os.ReadFile(filepath.Join(out, "ranges.dot"))
	require.NoError(t, err)
	assert.Contains(t, string(dot), `label="0..5"`)
}

func TestBuildCompressed(t *testing.T) { //nolint:paralleltest
	t.Setenv("RBTSET_COMPRESS", "gzip")
	t.Setenv("RBTSET_WORKERS", "2")

	in := t.TempDir()
	out := t.TempDir()

	var packed bytes.Buffer

	w, err := codec.NewWriter(&packed, codec.Brotli)
	require.NoError(t, err)
	_, err = io.WriteString(w, "kind: natural\ninsert: [n10, n2]\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := writeFixture(t, in, "names.yaml.br", packed.String())

	output, err := execute(t, "build", "-o", out, path)
	require.NoError(t, err, output)

	f, err := os.Open(filepath.Join(out, "names.dot.gz"))
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	r, err := codec.NewReader(f, codec.Gzip)
	require.NoError(t, err)

	dot, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "n10")
}

func TestBuildFailures(t *testing.T) { //nolint:paralleltest
	in := t.TempDir()
	out := t.TempDir()

	good := writeFixture(t, in, "good.yaml", "kind: int\ninsert: [1]\n")
	bad := writeFixture(t, in, "bad.yaml", "kind: int\ninsert: [one]\n")

	output, err := execute(t, "build", "--out", out, good, bad, filepath.Join(in, "missing.yaml"))
	require.ErrorIs(t, err, ErrBuildFailed)
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Contains(t, output, "fixture failed")

	_, err = os.Stat(filepath.Join(out, "good.dot"))
	require.NoError(t, err)

	_, err = execute(t, "build", "--out", out, "--compress", "snappy", good)
	require.ErrorIs(t, err, codec.ErrUnknownCodec)

	_, err = execute(t, "build", "--out", out, "--workers", "0", good)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = execute(t, "build")
	require.Error(t, err)
}

func TestBuildDuplicateOutputs(t *testing.T) { //nolint:paralleltest
	out := t.TempDir()

	first := filepath.Join(t.TempDir(), "a.yaml")
	second := filepath.Join(t.TempDir(), "a.yml")
	require.NoError(t, os.WriteFile(first, []byte("kind: int\ninsert: [1]\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("kind: int\ninsert: [2]\n"), 0o600))

	_, err := execute(t, "build", "--out", out, first, second)
	require.ErrorIs(t, err, ErrDuplicateOutput)
	assert.Contains(t, err.Error(), filepath.Join(out, "a.dot"))

	_, err = os.Stat(filepath.Join(out, "a.dot"))
	require.ErrorIs(t, err, os.ErrNotExist, "nothing is written when outputs collide")

	output, err := execute(t, "build", "--out", out, first, first)
	require.NoError(t, err, output)
	assert.Contains(t, output, "ok=1")
}

func TestPlanOutputs(t *testing.T) {
	t.Parallel()

	jobs, err := planOutputs(buildOptions{outDir: "out", compress: "gzip"},
		[]string{"x/a.yaml", "y/b.yaml", "x/a.yaml"})
	require.NoError(t, err)
	assert.Equal(t, []buildJob{
		{path: "x/a.yaml", out: filepath.Join("out", "a.dot.gz")},
		{path: "y/b.yaml", out: filepath.Join("out", "b.dot.gz")},
	}, jobs)

	_, err = planOutputs(buildOptions{outDir: "out"}, []string{"x/a.yaml", "y/a.yaml.br"})
	require.ErrorIs(t, err, ErrDuplicateOutput)
}

func TestEnvFile(t *testing.T) { //nolint:paralleltest
	t.Setenv("RBTSET_COMPRESS", "")
	require.NoError(t, os.Unsetenv("RBTSET_COMPRESS"))

	in := t.TempDir()
	out := t.TempDir()

	env := writeFixture(t, in, "rbtset.env", "RBTSET_COMPRESS=zstd\n")
	ints := writeFixture(t, in, "ints.yaml", "kind: int\ninsert: [1, 2]\n")

	output, err := execute(t, "--env-file", env, "build", "--out", out, ints)
	require.NoError(t, err, output)

	_, err = os.Stat(filepath.Join(out, "ints.dot.zst"))
	require.NoError(t, err)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, compress, expected string
	}{
		{"fixtures/a.yaml", "none", "out/a.dot"},
		{"fixtures/a.yaml.gz", "none", "out/a.dot"},
		{"b.yml", "zstd", "out/b.dot.zst"},
		{"c", "br", "out/c.dot.br"},
	}

	for _, test := range tests {
		got, err := outputPath("out", test.path, test.compress)
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash(test.expected), got)
	}

	_, err := outputPath("out", "a.yaml", "snappy")
	require.ErrorIs(t, err, codec.ErrUnknownCodec)
}

func TestVersion(t *testing.T) { //nolint:paralleltest
	output, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "rbtset ")
}
