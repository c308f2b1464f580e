package digest

import (
	"errors"
	"io"
)

// Verifier reads through a Measurer and checks the measured digest against
// an expected one when the stream ends.
//
// Reads before end of stream are never compared. When the inner reader
// returns io.EOF and the data does not match, that read returns a
// *MismatchError in place of io.EOF; every later read returns the same error.
// Nothing is checked if the stream is never read to the end.
type Verifier[T any] struct {
	measurer *Measurer[T]
	err      error
	expected Digest
	checked  bool
}

var (
	_ io.ReadCloser = (*Verifier[io.ReadCloser])(nil)
	_ Measurable    = (*Verifier[io.Reader])(nil)
)

// NewVerifier returns a Verifier that checks the data read from inner
// against expected.
func NewVerifier[T any](expected Digest, inner T) *Verifier[T] {
	return &Verifier[T]{
		measurer: NewMeasurer(expected.Hasher(), inner),
		expected: expected,
	}
}

// Verify returns a Verifier checking the data read from r against d.
func (d Digest) Verify(r io.Reader) *Verifier[io.Reader] {
	return NewVerifier(d, r)
}

// Read implements io.Reader.
func (v *Verifier[T]) Read(p []byte) (int, error) {
	n, err := v.measurer.Read(p)
	if !errors.Is(err, io.EOF) {
		return n, err
	}

	if !v.checked {
		v.checked = true
		if actual := v.measurer.Measure(); actual != v.expected {
			v.err = &MismatchError{Expected: v.expected, Actual: actual}
		}
	}
	if v.err != nil {
		return n, v.err
	}
	return n, err
}

// Expected returns the digest the stream is checked against.
func (v *Verifier[T]) Expected() Digest {
	return v.expected
}

// Measure returns the digest of the data read so far.
func (v *Verifier[T]) Measure() Digest {
	return v.measurer.Measure()
}

// Verified reports whether the stream has ended and matched the expected
// digest.
func (v *Verifier[T]) Verified() bool {
	return v.checked && v.err == nil
}

// Close closes the inner value if it is an io.Closer.
func (v *Verifier[T]) Close() error {
	return v.measurer.Close()
}

// Inner returns the wrapped value.
func (v *Verifier[T]) Inner() T {
	return v.measurer.Inner()
}
