package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// Algorithm identifies one of the hash functions a Digest can be computed with.
// The set is closed: every switch over Algorithm lists all of its members.
type Algorithm uint8

const (
	// SHA256 is SHA-256, producing 32 byte digests. It is the zero value.
	SHA256 Algorithm = iota
	// SHA384 is SHA-384, producing 48 byte digests.
	SHA384
	// SHA512 is SHA-512, producing 64 byte digests.
	SHA512
)

// Canonical is the algorithm assumed when a digest string carries no prefix
// and used by DefaultHasher.
const Canonical = SHA256

// maxSize is the largest output size of any supported algorithm.
const maxSize = sha512.Size

// Algorithms returns every supported algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA384, SHA512}
}

// ParseAlgorithm returns the algorithm with the given name.
// Names are case-sensitive; only "sha256", "sha384" and "sha512" are accepted.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "sha256":
		return SHA256, nil
	case "sha384":
		return SHA384, nil
	case "sha512":
		return SHA512, nil
	}
	return 0, ErrAlgorithm
}

// String returns the name used in the digest text format.
func (a Algorithm) String() string {
	switch a {
	case SHA256:
		return "sha256"
	case SHA384:
		return "sha384"
	case SHA512:
		return "sha512"
	}
	return fmt.Sprintf("Algorithm(%d)", uint8(a))
}

// Size returns the digest size in bytes, or 0 for an unknown algorithm.
func (a Algorithm) Size() int {
	switch a {
	case SHA256:
		return sha256.Size
	case SHA384:
		return sha512.Size384
	case SHA512:
		return sha512.Size
	}
	return 0
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	return a.Size() != 0
}

// Hasher returns a new Hasher for a.
func (a Algorithm) Hasher() *Hasher {
	return NewHasher(a)
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, ErrAlgorithm
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}

func (a Algorithm) newHash() hash.Hash {
	switch a {
	case SHA256:
		return sha256.New()
	case SHA384:
		return sha512.New384()
	case SHA512:
		return sha512.New()
	}
	panic("digest: requested hash function " + a.String() + " is unavailable")
}
