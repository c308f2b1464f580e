package port

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCompression indicates that a compression format is not known.
var ErrUnsupportedCompression = errors.New("unsupported compression format")

// Compression names the compression format of a blob.
// The empty value means the content is stored uncompressed.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionZstd Compression = "zstd"
	CompressionGzip Compression = "gzip"
)

// ParseCompression parses a compression name as written in the manifest or on the command line.
// "none" is accepted as an alias for the empty value.
func ParseCompression(name string) (Compression, error) {
	c := Compression(name)
	if name == "none" {
		c = CompressionNone
	}
	if !c.Valid() {
		return CompressionNone, fmt.Errorf("%w: %q. Supported formats: zstd, gzip", ErrUnsupportedCompression, name)
	}
	return c, nil
}

// Valid reports whether c is a known compression format.
func (c Compression) Valid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionGzip:
		return true
	}
	return false
}

// IsCompressed reports whether c names an actual compression format.
func (c Compression) IsCompressed() bool {
	return c != CompressionNone
}

func (c Compression) String() string {
	if c == CompressionNone {
		return "none"
	}
	return string(c)
}
