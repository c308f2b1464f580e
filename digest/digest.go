// Package digest implements content-addressable digests in the
// "<algorithm>:<hex>" form used by OCI image manifests, together with
// incremental hashers and stream wrappers that measure or verify data
// while it is being read or written.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// Digest is an algorithm-tagged hash value.
//
// Digest is comparable: two digests are equal when both the algorithm and the
// bytes match, so it can be used with == and as a map key. Bytes past the
// algorithm's size are always zero. The zero value is the all-zero SHA-256
// digest.
type Digest struct {
	alg Algorithm
	sum [maxSize]byte
}

// New returns the digest of algorithm alg with the given raw bytes.
// It fails with ErrAlgorithm for an unknown algorithm and with ErrLength when
// len(raw) differs from alg.Size().
func New(alg Algorithm, raw []byte) (Digest, error) {
	if !alg.Valid() {
		return Digest{}, ErrAlgorithm
	}
	if len(raw) != alg.Size() {
		return Digest{}, ErrLength
	}
	d := Digest{alg: alg}
	copy(d.sum[:], raw)
	return d, nil
}

// NewSHA256 returns a SHA-256 digest.
func NewSHA256(sum [sha256.Size]byte) Digest {
	d := Digest{alg: SHA256}
	copy(d.sum[:], sum[:])
	return d
}

// NewSHA384 returns a SHA-384 digest.
func NewSHA384(sum [sha512.Size384]byte) Digest {
	d := Digest{alg: SHA384}
	copy(d.sum[:], sum[:])
	return d
}

// NewSHA512 returns a SHA-512 digest.
func NewSHA512(sum [sha512.Size]byte) Digest {
	d := Digest{alg: SHA512}
	copy(d.sum[:], sum[:])
	return d
}

// Parse parses a digest of the form "<algorithm>:<hex>".
//
// A string without a colon is read as the hex part of a SHA-256 digest, so
// legacy unqualified digests keep working. The algorithm must be one of
// "sha256", "sha384" or "sha512" and the hex part must be lowercase and
// exactly twice the algorithm's size. Checks run in that order: ErrAlgorithm,
// then ErrLength, then ErrCharacter for the leftmost bad digit.
func Parse(s string) (Digest, error) {
	name, encoded, found := strings.Cut(s, ":")
	if !found {
		name, encoded = Canonical.String(), s
	}

	alg, err := ParseAlgorithm(name)
	if err != nil {
		return Digest{}, err
	}

	size := alg.Size()
	if len(encoded) != 2*size {
		return Digest{}, ErrLength
	}

	d := Digest{alg: alg}
	for i := 0; i < size; i++ {
		hi, ok := unhex(encoded[2*i])
		if !ok {
			return Digest{}, ErrCharacter
		}
		lo, ok := unhex(encoded[2*i+1])
		if !ok {
			return Digest{}, ErrCharacter
		}
		d.sum[i] = hi<<4 | lo
	}
	return d, nil
}

// MustParse is like Parse but panics if s cannot be parsed.
func MustParse(s string) Digest {
	d, err := Parse(s)
	if err != nil {
		panic(`digest: Parse("` + s + `"): ` + err.Error())
	}
	return d
}

// unhex decodes one lowercase hex digit. encoding/hex also accepts
// uppercase digits, which the text format rejects.
func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// Algorithm returns the algorithm d was computed with.
func (d Digest) Algorithm() Algorithm {
	return d.alg
}

// Size returns the length of d in bytes.
func (d Digest) Size() int {
	return d.alg.Size()
}

// Bytes returns a copy of the raw digest bytes.
func (d Digest) Bytes() []byte {
	return append([]byte(nil), d.sum[:d.alg.Size()]...)
}

// Hex returns the lowercase hex encoding of the digest bytes.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.sum[:d.alg.Size()])
}

// String returns d in the "<algorithm>:<hex>" form accepted by Parse.
func (d Digest) String() string {
	name := d.alg.String()
	size := d.alg.Size()

	buf := make([]byte, 0, len(name)+1+2*size)
	buf = append(buf, name...)
	buf = append(buf, ':')
	buf = hex.AppendEncode(buf, d.sum[:size])
	return string(buf)
}

// GoString implements fmt.GoStringer.
func (d Digest) GoString() string {
	return `digest.MustParse("` + d.String() + `")`
}

// IsZero reports whether d is the zero value.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Equal reports whether d and other have the same algorithm and bytes.
func (d Digest) Equal(other Digest) bool {
	return d == other
}

// Hasher returns a new Hasher using the algorithm of d.
func (d Digest) Hasher() *Hasher {
	return NewHasher(d.alg)
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts exactly
// what Parse accepts and fails with the same errors.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
