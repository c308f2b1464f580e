package digest

import (
	"errors"
	"fmt"
)

// Error is a digest parsing failure. The set of values is closed.
type Error uint8

const (
	// ErrAlgorithm reports an unsupported or wrongly cased algorithm name.
	ErrAlgorithm Error = iota + 1
	// ErrCharacter reports a hex digit outside [0-9a-f].
	ErrCharacter
	// ErrLength reports an encoded value whose length does not match the algorithm.
	ErrLength
)

func (e Error) Error() string {
	switch e {
	case ErrAlgorithm:
		return "digest: unsupported algorithm"
	case ErrCharacter:
		return "digest: invalid character"
	case ErrLength:
		return "digest: invalid length"
	}
	return fmt.Sprintf("digest: error %d", uint8(e))
}

// ErrMismatch is matched by every *MismatchError.
var ErrMismatch = errors.New("digest mismatch")

// MismatchError is returned by a Verifier whose stream ended with a digest
// other than the expected one.
type MismatchError struct {
	Expected Digest
	Actual   Digest
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("digest mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// Is reports whether target is ErrMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}
