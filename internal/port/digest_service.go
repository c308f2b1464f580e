// Package port defines interfaces for external system integrations.
// It provides the abstraction the domain uses to digest local content.
package port

import (
	"context"

	"github.com/mazrean/ocidigest/digest"
)

// DigestService is the abstraction interface for digesting local paths.
// Regular files are digested as byte streams and directories as a tree of files.
type DigestService interface {
	// Compute returns the digest of the file or directory at path.
	Compute(ctx context.Context, path string, alg digest.Algorithm) (digest.Digest, error)

	// ComputeDecompressed returns the digest of the decompressed content of the file at path.
	ComputeDecompressed(ctx context.Context, path string, format Compression, alg digest.Algorithm) (digest.Digest, error)

	// Verify checks the content at path against expected.
	// A mismatch is reported as a *digest.MismatchError.
	Verify(ctx context.Context, path string, expected digest.Digest) error

	// VerifyDecompressed checks the decompressed content of the file at path against expected.
	VerifyDecompressed(ctx context.Context, path string, format Compression, expected digest.Digest) error
}
