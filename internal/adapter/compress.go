package adapter

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/mazrean/ocidigest/internal/port"
)

// NewDecompressor returns a reader yielding the decompressed content of r.
// CompressionNone passes r through unchanged.
func NewDecompressor(format port.Compression, r io.Reader) (io.ReadCloser, error) {
	switch format {
	case port.CompressionNone:
		return io.NopCloser(r), nil
	case port.CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	case port.CompressionGzip:
		dec, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return dec, nil
	}
	return nil, fmt.Errorf("%w: %q", port.ErrUnsupportedCompression, string(format))
}

// NewCompressor returns a writer compressing into w. Close must be called to flush the stream;
// it does not close w. CompressionNone writes through unchanged.
func NewCompressor(format port.Compression, w io.Writer) (io.WriteCloser, error) {
	switch format {
	case port.CompressionNone:
		return nopWriteCloser{w}, nil
	case port.CompressionZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return enc, nil
	case port.CompressionGzip:
		return gzip.NewWriter(w), nil
	}
	return nil, fmt.Errorf("%w: %q", port.ErrUnsupportedCompression, string(format))
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
