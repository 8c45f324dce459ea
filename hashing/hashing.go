// Package hashing turns Hashable values into stable hex digests.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/amp-labs/rbtset/errors"
	"github.com/zeebo/xxh3"
)

// HashFunc is a function that takes a Hashable object
// and returns a string representation of its hashing.
// As an example, the Sha256 function is a HashFunc.
// This lets us talk about hashing functions in a generic way.
type HashFunc func(hashable Hashable) (string, error)

// Hashable is an interface that allows an object to update
// a hash.Hash with its contents. This is useful for hashing
// objects so that they can be easily compared.
type Hashable interface {
	UpdateHash(h hash.Hash) error
}

// Sha256 returns the SHA256 hashing of the given Hashable
// as a hex-encoded string. If the Hashable fails to
// update the hashing, an error is returned.
func Sha256(hashable Hashable) (string, error) {
	h := sha256.New()

	if err := hashable.UpdateHash(h); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// XXH3 returns the 64-bit XXH3 digest of the given Hashable as 16 hex
// characters. It is not cryptographic; use it for structural fingerprints.
func XXH3(hashable Hashable) (string, error) {
	h := xxh3.New()

	if err := hashable.UpdateHash(h); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}

var byName = map[string]HashFunc{
	"sha256": Sha256,
	"xxh3":   XXH3,
}

// ByName looks up a HashFunc by its lower-case name ("sha256", "xxh3").
func ByName(name string) (HashFunc, error) {
	fn, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: hash %q (known: %s)", errors.ErrUnknownHash, name, strings.Join(Names(), ", "))
	}

	return fn, nil
}

// Names lists the hash functions known to ByName, sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

type HashableString string

func (s HashableString) String() string {
	return string(s)
}

func (s HashableString) UpdateHash(h hash.Hash) error {
	_, err := h.Write([]byte(s))

	return err
}

func (s HashableString) Equals(other HashableString) bool {
	return s == other
}
