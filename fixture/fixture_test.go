package fixture

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amp-labs/rbtset/codec"
	"github.com/amp-labs/rbtset/set"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, doc string) *Document {
	t.Helper()

	d, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	return d
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("scalars keep their text", func(t *testing.T) {
		t.Parallel()

		d := mustLoad(t, "name: mixed\nkind: INT\ninsert: [1, \"2\", 03]\nremove: [4]\n")

		assert.Equal(t, "mixed", d.Name)
		assert.Equal(t, "int", d.Kind)
		assert.Equal(t, []Scalar{"1", "2", "03"}, d.Insert)
		assert.Equal(t, []Scalar{"4"}, d.Remove)
		assert.False(t, d.Repack)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := Load(strings.NewReader("kind: float\n"))
		require.ErrorIs(t, err, ErrUnknownKind)
		assert.Contains(t, err.Error(), "natural")
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		_, err := Load(strings.NewReader("kind: int\ninserts: [1]\n"))
		require.Error(t, err)
	})

	t.Run("nested value", func(t *testing.T) {
		t.Parallel()

		_, err := Load(strings.NewReader("kind: int\ninsert: [[1, 2]]\n"))
		require.ErrorIs(t, err, ErrBadValue)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		_, err := Load(strings.NewReader(""))
		require.ErrorIs(t, err, ErrEmptyDocument)
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("consecutive ranges", func(t *testing.T) {
		t.Parallel()

		d := mustLoad(t, `
kind: range
insert: ["1..3", "5..8", "8..13", "13..16", "23..26"]
repack: true
`)

		report, err := d.Run(set.WithLogger(slogt.New(t)))
		require.NoError(t, err)

		assert.Equal(t, []string{"1..3", "5..16", "23..26"}, report.Values)
		assert.Equal(t, 3, report.Len)
		assert.Equal(t, 5, report.Inserted)
		assert.Equal(t, set.RepackStats{Runs: 1, Absorbed: 2}, report.Repack)
		assert.Len(t, report.Fingerprint, 16)
		assert.True(t, strings.HasPrefix(report.Dot, "graph RBTreeSet {\n"))
	})

	t.Run("overlapping ranges count as duplicates", func(t *testing.T) {
		t.Parallel()

		d := mustLoad(t, `kind: range
insert: ["5..10", "3..6", "3..5", "9..12"]
`)

		report, err := d.Run()
		require.NoError(t, err)

		assert.Equal(t, []string{"3..5", "5..10"}, report.Values)
		assert.Equal(t, 2, report.Inserted)
		assert.Equal(t, 2, report.Duplicates)
	})

	t.Run("counts", func(t *testing.T) {
		t.Parallel()

		d := mustLoad(t, "kind: int\ninsert: [5, 3, 5, 8, 1]\nremove: [3, 42]\n")

		report, err := d.Run()
		require.NoError(t, err)

		assert.Equal(t, &Report{
			Kind:        "int",
			Values:      []string{"1", "5", "8"},
			Len:         3,
			Inserted:    4,
			Duplicates:  1,
			Removed:     1,
			Missing:     1,
			Fingerprint: report.Fingerprint,
			Dot:         report.Dot,
		}, report)
	})

	t.Run("natural order", func(t *testing.T) {
		t.Parallel()

		report, err := mustLoad(t, "kind: natural\ninsert: [n10, n2, n1]\n").Run()
		require.NoError(t, err)
		assert.Equal(t, []string{"n1", "n2", "n10"}, report.Values)

		report, err = mustLoad(t, "kind: string\ninsert: [n10, n2, n1]\n").Run()
		require.NoError(t, err)
		assert.Equal(t, []string{"n1", "n10", "n2"}, report.Values)
	})

	t.Run("same contents same fingerprint", func(t *testing.T) {
		t.Parallel()

		a, err := mustLoad(t, "kind: byte\ninsert: [1, 2, 3]\n").Run()
		require.NoError(t, err)

		b, err := mustLoad(t, "kind: byte\ninsert: [1, 2, 3, 2]\n").Run()
		require.NoError(t, err)

		assert.Equal(t, a.Fingerprint, b.Fingerprint)
		assert.Equal(t, a.Dot, b.Dot)
	})

	t.Run("bad values", func(t *testing.T) {
		t.Parallel()

		_, err := mustLoad(t, "kind: int\ninsert: [1, two]\n").Run()
		require.ErrorIs(t, err, ErrBadValue)
		assert.Contains(t, err.Error(), "insert[1]")

		_, err = mustLoad(t, "kind: byte\ninsert: [256]\n").Run()
		require.ErrorIs(t, err, ErrBadValue)

		_, err = mustLoad(t, "kind: range\nremove: [\"4..2\"]\n").Run()
		require.ErrorIs(t, err, ErrBadValue)
		assert.Contains(t, err.Error(), "remove[0]")
	})

	t.Run("repack needs ranges", func(t *testing.T) {
		t.Parallel()

		_, err := mustLoad(t, "kind: int\ninsert: [1]\nrepack: true\n").Run()
		require.ErrorIs(t, err, ErrRepackUnsupported)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := (&Document{Kind: "float"}).Run()
		require.ErrorIs(t, err, ErrUnknownKind)
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	const doc = "kind: range\ninsert: [\"0..4\", \"4..9\"]\nrepack: true\n"

	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.yaml")
	require.NoError(t, os.WriteFile(plain, []byte(doc), 0o600))

	var buf bytes.Buffer

	w, err := codec.NewWriter(&buf, codec.Zstd)
	require.NoError(t, err)
	_, err = w.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	compressed := filepath.Join(dir, "packed.yaml.zst")
	require.NoError(t, os.WriteFile(compressed, buf.Bytes(), 0o600))

	for _, path := range []string{plain, compressed} {
		d, err := LoadFile(path)
		require.NoError(t, err, path)

		report, err := d.Run()
		require.NoError(t, err)
		assert.Equal(t, []string{"0..9"}, report.Values)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("kind: tuple\n"), 0o600))

	_, err = LoadFile(bad)
	require.ErrorIs(t, err, ErrUnknownKind)
	assert.Contains(t, err.Error(), bad)
}

func TestKinds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"byte", "int", "natural", "range", "string"}, Kinds())
}
