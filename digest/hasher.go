package digest

import (
	"hash"
	"io"
)

// Hasher incrementally computes a Digest with a fixed algorithm.
//
// A Hasher is not safe for concurrent use. Once Finish has been called the
// Hasher is spent: Update, Chain and Finish panic until Reset is called.
type Hasher struct {
	alg      Algorithm
	h        hash.Hash
	n        int64
	finished bool
}

// NewHasher returns a Hasher for alg in its empty-input state.
// It panics if alg is not a supported algorithm.
func NewHasher(alg Algorithm) *Hasher {
	return &Hasher{alg: alg, h: alg.newHash()}
}

// DefaultHasher returns a Hasher for the Canonical algorithm.
func DefaultHasher() *Hasher {
	return NewHasher(Canonical)
}

// Algorithm returns the algorithm of the digest h produces.
func (h *Hasher) Algorithm() Algorithm {
	return h.alg
}

// Size returns the number of bytes fed into h since it was created or reset.
func (h *Hasher) Size() int64 {
	return h.n
}

// Reset discards all input and makes h usable again.
func (h *Hasher) Reset() {
	h.h.Reset()
	h.n = 0
	h.finished = false
}

// Update feeds p into the running hash.
func (h *Hasher) Update(p []byte) {
	if h.finished {
		panic("digest: Update after Finish")
	}
	// hash.Hash never returns an error from Write.
	_, _ = h.h.Write(p)
	h.n += int64(len(p))
}

// Chain feeds p into the running hash and returns h.
func (h *Hasher) Chain(p []byte) *Hasher {
	h.Update(p)
	return h
}

// Write implements io.Writer. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	h.Update(p)
	return len(p), nil
}

// Finish returns the digest of everything fed into h and marks h as spent.
func (h *Hasher) Finish() Digest {
	if h.finished {
		panic("digest: Finish called twice")
	}
	h.finished = true

	d := Digest{alg: h.alg}
	h.h.Sum(d.sum[:0])
	return d
}

// Clone returns an independent copy of h, including its in-progress state.
// Finishing the clone leaves h untouched.
func (h *Hasher) Clone() *Hasher {
	state, err := h.h.(hash.Cloner).Clone()
	if err != nil {
		panic("digest: clone " + h.alg.String() + " state: " + err.Error())
	}
	return &Hasher{alg: h.alg, h: state, n: h.n, finished: h.finished}
}

// Sum returns the digest of data computed with alg.
func Sum(alg Algorithm, data []byte) Digest {
	return NewHasher(alg).Chain(data).Finish()
}

// Compute reads r until EOF and returns its digest computed with alg along
// with the number of bytes read.
func Compute(alg Algorithm, r io.Reader) (Digest, int64, error) {
	h := NewHasher(alg)
	n, err := io.Copy(h, r)
	if err != nil {
		return Digest{}, n, err
	}
	return h.Finish(), n, nil
}
