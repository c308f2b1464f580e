package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/mod/sumdb/dirhash"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/port"
)

// FileDigestService is an implementation of DigestService for the local filesystem.
// Regular files are streamed through the digest package's Measurer and Verifier.
// Directories are digested with golang.org/x/mod/sumdb/dirhash using TreeHash.
type FileDigestService struct{}

var _ port.DigestService = (*FileDigestService)(nil)

// NewFileDigestService creates a new FileDigestService instance.
func NewFileDigestService() *FileDigestService {
	return &FileDigestService{}
}

// Compute returns the digest of the file or directory at path.
func (s *FileDigestService) Compute(ctx context.Context, path string, alg digest.Algorithm) (digest.Digest, error) {
	if err := ctx.Err(); err != nil {
		return digest.Digest{}, err
	}

	isDir, err := statPath(path)
	if err != nil {
		return digest.Digest{}, err
	}
	if isDir {
		return s.computeTree(path, alg)
	}

	f, err := os.Open(path)
	if err != nil {
		return digest.Digest{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m := digest.NewHasher(alg).Reader(&contextReader{ctx: ctx, r: f})
	if _, err := io.Copy(io.Discard, m); err != nil {
		return digest.Digest{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return m.Measure(), nil
}

// ComputeDecompressed returns the digest of the decompressed content of the file at path.
func (s *FileDigestService) ComputeDecompressed(ctx context.Context, path string, format port.Compression, alg digest.Algorithm) (digest.Digest, error) {
	r, closeFn, err := openDecompressed(ctx, path, format)
	if err != nil {
		return digest.Digest{}, err
	}
	defer closeFn()

	d, _, err := digest.Compute(alg, r)
	if err != nil {
		return digest.Digest{}, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return d, nil
}

// Verify checks the content at path against expected.
// Files are read to the end through a Verifier, so a mismatch surfaces as the *digest.MismatchError it returns.
func (s *FileDigestService) Verify(ctx context.Context, path string, expected digest.Digest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	isDir, err := statPath(path)
	if err != nil {
		return err
	}
	if isDir {
		actual, err := s.computeTree(path, expected.Algorithm())
		if err != nil {
			return err
		}
		if actual != expected {
			return &digest.MismatchError{Expected: expected, Actual: actual}
		}
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return drain(expected.Verify(&contextReader{ctx: ctx, r: f}), path)
}

// VerifyDecompressed checks the decompressed content of the file at path against expected.
func (s *FileDigestService) VerifyDecompressed(ctx context.Context, path string, format port.Compression, expected digest.Digest) error {
	r, closeFn, err := openDecompressed(ctx, path, format)
	if err != nil {
		return err
	}
	defer closeFn()

	return drain(expected.Verify(r), path)
}

func (s *FileDigestService) computeTree(dir string, alg digest.Algorithm) (digest.Digest, error) {
	value, err := dirhash.HashDir(dir, "", TreeHash(alg))
	if err != nil {
		return digest.Digest{}, fmt.Errorf("failed to calculate tree digest for directory %s: %w", dir, err)
	}
	return digest.Parse(value)
}

// TreeHash returns a dirhash.Hash that follows the dirhash.Hash1 construction with alg:
// each file is digested, the sorted "<hex>  <name>\n" lines are digested again, and
// the result is formatted as "<algorithm>:<hex>".
func TreeHash(alg digest.Algorithm) dirhash.Hash {
	return func(files []string, open func(string) (io.ReadCloser, error)) (string, error) {
		summary := digest.NewHasher(alg)
		files = slices.Clone(files)
		slices.Sort(files)

		for _, file := range files {
			if strings.Contains(file, "\n") {
				return "", errors.New("dirhash: filenames with newlines are not supported")
			}
			r, err := open(file)
			if err != nil {
				return "", err
			}
			d, _, err := digest.Compute(alg, r)
			r.Close()
			if err != nil {
				return "", err
			}
			fmt.Fprintf(summary, "%s  %s\n", d.Hex(), file)
		}

		return summary.Finish().String(), nil
	}
}

// statPath reports whether path is a directory, turning a missing path into a readable error.
func statPath(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("path does not exist: %s: %w", path, err)
		}
		return false, fmt.Errorf("failed to access %s: %w", path, err)
	}
	return info.IsDir(), nil
}

// openDecompressed opens the file at path and wraps it in a decompressor for format.
func openDecompressed(ctx context.Context, path string, format port.Compression) (io.Reader, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	dec, err := NewDecompressor(format, &contextReader{ctx: ctx, r: f})
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return dec, func() {
		dec.Close()
		f.Close()
	}, nil
}

// drain reads v to the end, returning a mismatch error unwrapped.
func drain(v *digest.Verifier[io.Reader], path string) error {
	_, err := io.Copy(io.Discard, v)
	if err == nil || errors.Is(err, digest.ErrMismatch) {
		return err
	}
	return fmt.Errorf("failed to read %s: %w", path, err)
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
