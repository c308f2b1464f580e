package adapter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/port"
)

const (
	layerFileMode fs.FileMode = 0o644 // User: rw, Group: r, Others: r
)

// LayerDescriptor describes a compressed layer blob.
type LayerDescriptor struct {
	Compression port.Compression // Format of the blob
	Size        int64            // Size of the blob in bytes
	Digest      digest.Digest    // Digest of the compressed blob
	DiffID      digest.Digest    // Digest of the uncompressed content
}

// BuildLayer compresses src into dst in a single pass.
// The uncompressed bytes are measured on the way in and the compressed bytes on the way out,
// so neither file is read twice.
func BuildLayer(ctx context.Context, src, dst string, format port.Compression, alg digest.Algorithm) (*LayerDescriptor, error) {
	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open layer source %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, layerFileMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create layer file %s: %w", dst, err)
	}
	defer out.Close()

	blob := digest.NewMeasurer(digest.NewHasher(alg), bufio.NewWriter(out))
	content := digest.NewHasher(alg).Reader(&contextReader{ctx: ctx, r: in})

	comp, err := NewCompressor(format, blob)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(comp, content); err != nil {
		comp.Close()
		return nil, fmt.Errorf("failed to compress %s: %w", src, err)
	}
	if err := comp.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish %s stream: %w", format, err)
	}
	if err := blob.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write layer file %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close layer file %s: %w", dst, err)
	}

	return &LayerDescriptor{
		Compression: format,
		Size:        blob.Size(),
		Digest:      blob.Measure(),
		DiffID:      content.Measure(),
	}, nil
}
