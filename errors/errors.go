// Package errors holds the sentinel errors shared across rbtset packages and
// a small accumulator for reporting several failures at once.
package errors

import "errors"

var (
	ErrWrongType = errors.New("wrong type")

	// ErrForeignNode is returned when a node handle is passed to a set that
	// did not allocate it.
	ErrForeignNode = errors.New("node belongs to a different set")
	// ErrStaleNode is returned when a node handle refers to a slot that has
	// since been freed or reused.
	ErrStaleNode = errors.New("node handle is stale")

	ErrUnknownCodec      = errors.New("unknown codec")
	ErrUnknownHash       = errors.New("unknown hash function")
	ErrUnknownKind       = errors.New("unknown element kind")
	ErrBadValue          = errors.New("malformed value")
	ErrRepackUnsupported = errors.New("repack is not supported for this element kind")
	ErrEmptyDocument     = errors.New("empty fixture document")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrBuildFailed       = errors.New("one or more fixtures failed to build")
	ErrDuplicateOutput   = errors.New("fixtures would write the same output file")
)

// Collection is a thread-unsafe utility for accumulating multiple errors.
// It provides methods to add errors, check for errors, and retrieve them as a single combined error.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are automatically ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Clear removes all errors from the collection, resetting it to an empty state.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *Collection) Len() int {
	return len(c.errors)
}

// GetError returns the collected errors as a single error.
// Returns nil if the collection is empty, the single error if there's only one,
// or a joined error (using errors.Join) if there are multiple errors.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
