package digest

import (
	"errors"
	"fmt"
	"io"
)

// Measurable is implemented by types that can report the digest of the data
// they have seen so far.
type Measurable interface {
	Measure() Digest
}

type flusher interface {
	Flush() error
}

// Measurer wraps a reader or writer and hashes every byte that passes
// through it.
//
// Read is available when T implements io.Reader, Write when T implements
// io.Writer; otherwise they fail with errors.ErrUnsupported.
type Measurer[T any] struct {
	hasher *Hasher
	inner  T
}

var (
	_ io.ReadWriteCloser = (*Measurer[io.ReadWriteCloser])(nil)
	_ Measurable         = (*Measurer[io.Reader])(nil)
)

// NewMeasurer returns a Measurer feeding h with the data passing through
// inner. The Measurer takes ownership of h.
func NewMeasurer[T any](h *Hasher, inner T) *Measurer[T] {
	return &Measurer[T]{hasher: h, inner: inner}
}

// Reader returns a Measurer over r that takes ownership of h.
func (h *Hasher) Reader(r io.Reader) *Measurer[io.Reader] {
	return NewMeasurer(h, r)
}

// Writer returns a Measurer over w that takes ownership of h.
func (h *Hasher) Writer(w io.Writer) *Measurer[io.Writer] {
	return NewMeasurer(h, w)
}

// Read reads from the inner reader and hashes the n bytes it returned.
// Errors from the inner reader are returned unchanged.
func (m *Measurer[T]) Read(p []byte) (int, error) {
	r, ok := any(m.inner).(io.Reader)
	if !ok {
		return 0, fmt.Errorf("digest: read from %T: %w", m.inner, errors.ErrUnsupported)
	}

	n, err := r.Read(p)
	if n > 0 {
		m.hasher.Update(p[:n])
	}
	return n, err
}

// Write writes to the inner writer and hashes the n bytes it accepted.
// Errors from the inner writer are returned unchanged.
func (m *Measurer[T]) Write(p []byte) (int, error) {
	w, ok := any(m.inner).(io.Writer)
	if !ok {
		return 0, fmt.Errorf("digest: write to %T: %w", m.inner, errors.ErrUnsupported)
	}

	n, err := w.Write(p)
	if n > 0 {
		m.hasher.Update(p[:n])
	}
	return n, err
}

// Flush flushes the inner writer if it has a Flush method.
func (m *Measurer[T]) Flush() error {
	if f, ok := any(m.inner).(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close closes the inner value if it is an io.Closer. No digest is
// finalized or checked.
func (m *Measurer[T]) Close() error {
	if c, ok := any(m.inner).(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Measure returns the digest of the data seen so far without disturbing the
// running hash.
func (m *Measurer[T]) Measure() Digest {
	return m.hasher.Clone().Finish()
}

// Size returns the number of bytes hashed so far.
func (m *Measurer[T]) Size() int64 {
	return m.hasher.Size()
}

// Inner returns the wrapped value. Bytes read or written on it directly are
// not hashed.
func (m *Measurer[T]) Inner() T {
	return m.inner
}
