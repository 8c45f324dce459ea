package fixture

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/amp-labs/rbtset/logger"
	"github.com/amp-labs/rbtset/set"
	"github.com/amp-labs/rbtset/sortable"
)

// Report describes the set a Document produced.
type Report struct {
	Name        string          `json:"name,omitempty"   yaml:"name,omitempty"`
	Kind        string          `json:"kind"             yaml:"kind"`
	Values      []string        `json:"values"           yaml:"values"`
	Len         int             `json:"len"              yaml:"len"`
	Inserted    int             `json:"inserted"         yaml:"inserted"`
	Duplicates  int             `json:"duplicates"       yaml:"duplicates"`
	Removed     int             `json:"removed"          yaml:"removed"`
	Missing     int             `json:"missing"          yaml:"missing"`
	Repack      set.RepackStats `json:"repack"           yaml:"repack"`
	Fingerprint string          `json:"fingerprint"      yaml:"fingerprint"`
	Dot         string          `json:"-"                yaml:"-"`
}

type runner func(doc *Document, opts []set.Option) (*Report, error)

var kinds = map[string]runner{ //nolint:gochecknoglobals
	"int":     build(parseInt, nil),
	"byte":    build(parseByte, nil),
	"string":  build(parseString, nil),
	"natural": build(parseNatural, nil),
	"range":   build(sortable.ParseRange, set.Repack[sortable.Range]),
}

// Kinds returns the element kinds a Document may name, sorted.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}

	slices.Sort(names)

	return names
}

func parseInt(s string) (sortable.Int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))

	return sortable.Int(v), err
}

func parseByte(s string) (sortable.Byte, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)

	return sortable.Byte(v), err
}

func parseString(s string) (sortable.String, error) {
	return sortable.String(s), nil
}

func parseNatural(s string) (sortable.NaturalString, error) {
	return sortable.NaturalString(s), nil
}

// Run builds a fresh set of the document's kind, inserts then removes the
// listed values, repacks if asked, and validates the result. opts are passed
// to the set.
func (d *Document) Run(opts ...set.Option) (*Report, error) {
	run, ok := kinds[d.Kind]
	if !ok {
		return nil, logger.AnnotateError(fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind), "kind", d.Kind)
	}

	return run(d, opts)
}

func parseAll[T any](section string, raw []Scalar, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(raw))

	for i, r := range raw {
		v, err := parse(string(r))
		if err != nil {
			return nil, logger.AnnotateError(
				fmt.Errorf("%w: %s[%d] = %q: %w", ErrBadValue, section, i, string(r), err),
				"section", section, "index", i, "value", string(r))
		}

		out = append(out, v)
	}

	return out, nil
}

func build[T sortable.Sortable[T]](
	parse func(string) (T, error),
	repack func(*set.RBTreeSet[T]) set.RepackStats,
) runner {
	return func(doc *Document, opts []set.Option) (*Report, error) {
		if doc.Repack && repack == nil {
			return nil, logger.AnnotateError(fmt.Errorf("%w: %q", ErrRepackUnsupported, doc.Kind), "kind", doc.Kind)
		}

		inserts, err := parseAll("insert", doc.Insert, parse)
		if err != nil {
			return nil, err
		}

		removes, err := parseAll("remove", doc.Remove, parse)
		if err != nil {
			return nil, err
		}

		s := set.NewRBTreeSet[T](opts...)
		report := &Report{Name: doc.Name, Kind: doc.Kind}

		for _, v := range inserts {
			if _, added := s.Insert(v); added {
				report.Inserted++
			} else {
				report.Duplicates++
			}
		}

		for _, v := range removes {
			if s.Remove(v) {
				report.Removed++
			} else {
				report.Missing++
			}
		}

		if doc.Repack {
			report.Repack = repack(s)
		}

		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid tree after running fixture: %w", err)
		}

		report.Len = s.Len()
		report.Values = make([]string, 0, s.Len())

		for v := range s.Values() {
			report.Values = append(report.Values, fmt.Sprint(v))
		}

		report.Fingerprint = s.Fingerprint()
		report.Dot = s.DumpTreeAsDot()

		return report, nil
	}
}
