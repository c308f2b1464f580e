package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/adapter"
	"github.com/mazrean/ocidigest/internal/port"
)

// stdinPath is the path argument that selects standard input
const stdinPath = "-"

// SumCmd represents the sum command
type SumCmd struct {
	Decompress string           `help:"Digest the decompressed content (zstd, gzip)" placeholder:"FORMAT"`
	Paths      []string         `arg:"" help:"Files or directories to digest ('-' reads standard input)"`
	Algorithm  digest.Algorithm `help:"Digest algorithm (sha256, sha384, sha512)" short:"a" default:"sha256"`
}

// Run executes the sum command
func (c *SumCmd) Run(ctx *kong.Context) error {
	_, verbose := globalFlags(ctx)
	return c.runWithLogger(NewLogger(verbose), os.Stdin)
}

// runWithLogger prints "<digest>  <path>" for every path.
// All paths are attempted even when some of them fail.
func (c *SumCmd) runWithLogger(logger *Logger, stdin io.Reader) error {
	format, err := port.ParseCompression(c.Decompress)
	if err != nil {
		logger.Error("Invalid --decompress value: %v", err)
		return err
	}

	svc := adapter.NewFileDigestService()
	failed := 0
	for _, path := range c.Paths {
		logger.Verbose("Digesting %s with %s", path, c.Algorithm)

		d, err := c.sum(context.Background(), svc, path, format, stdin)
		if err != nil {
			logger.Error("%s: %v", path, err)
			failed++
			continue
		}
		logger.Info("%s  %s", d, path)
	}

	if failed > 0 {
		return fmt.Errorf("failed to digest %d of %d path(s)", failed, len(c.Paths))
	}
	return nil
}

func (c *SumCmd) sum(ctx context.Context, svc *adapter.FileDigestService, path string, format port.Compression, stdin io.Reader) (digest.Digest, error) {
	if path == stdinPath {
		r, err := adapter.NewDecompressor(format, stdin)
		if err != nil {
			return digest.Digest{}, err
		}
		defer r.Close()

		d, _, err := digest.Compute(c.Algorithm, r)
		return d, err
	}

	if format.IsCompressed() {
		return svc.ComputeDecompressed(ctx, path, format, c.Algorithm)
	}
	return svc.Compute(ctx, path, c.Algorithm)
}
