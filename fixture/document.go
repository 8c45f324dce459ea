// Package fixture reads YAML documents that describe the contents of a set
// and the operations to apply to it:
//
//	kind: range
//	insert: ["0..4", "4..9", "12..14"]
//	remove: ["12..14"]
//	repack: true
//
// Run builds the typed set and reports what happened.
package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amp-labs/rbtset/codec"
	rbterrors "github.com/amp-labs/rbtset/errors"
	"github.com/amp-labs/rbtset/logger"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownKind       = rbterrors.ErrUnknownKind
	ErrBadValue          = rbterrors.ErrBadValue
	ErrRepackUnsupported = rbterrors.ErrRepackUnsupported
	ErrEmptyDocument     = rbterrors.ErrEmptyDocument
)

// Scalar is a single YAML scalar kept as its literal text, so 7, "7" and
// 0..4 all decode without a schema per kind.
type Scalar string

func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a scalar", ErrBadValue, node.Line)
	}

	*s = Scalar(node.Value)

	return nil
}

// Document is one fixture.
type Document struct {
	Name   string   `json:"name,omitempty"   yaml:"name,omitempty"`
	Kind   string   `json:"kind"             yaml:"kind"`
	Insert []Scalar `json:"insert,omitempty" yaml:"insert,omitempty"`
	Remove []Scalar `json:"remove,omitempty" yaml:"remove,omitempty"`
	Repack bool     `json:"repack,omitempty" yaml:"repack,omitempty"`
}

// Load decodes a single document from r. Unknown fields and unknown kinds
// are rejected here, before any set is built.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}

		return nil, fmt.Errorf("decoding fixture: %w", err)
	}

	doc.Kind = strings.ToLower(strings.TrimSpace(doc.Kind))

	if _, ok := kinds[doc.Kind]; !ok {
		return nil, logger.AnnotateError(
			fmt.Errorf("%w: %q (known: %s)", ErrUnknownKind, doc.Kind, strings.Join(Kinds(), ", ")),
			"kind", doc.Kind)
	}

	return &doc, nil
}

// LoadFile reads a document from path. Files ending in a codec extension
// (.gz, .zst, .lz4, .br) are decompressed first.
func LoadFile(path string) (doc *Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		err = errors.Join(err, f.Close())
	}()

	r, err := codec.NewReader(f, codec.FromPath(path))
	if err != nil {
		return nil, logger.AnnotateError(err, "file", path)
	}

	defer func() {
		err = errors.Join(err, r.Close())
	}()

	doc, err = Load(r)
	if err != nil {
		return nil, logger.AnnotateError(fmt.Errorf("%s: %w", path, err), "file", path)
	}

	return doc, nil
}
