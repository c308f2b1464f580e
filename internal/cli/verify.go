package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/adapter"
	"github.com/mazrean/ocidigest/internal/port"
)

// VerifyCmd represents the verify command
type VerifyCmd struct {
	Digest     string `arg:"" help:"Expected digest (<algorithm>:<hex>)"`
	Path       string `arg:"" help:"File or directory to verify ('-' reads standard input)"`
	Decompress string `help:"Verify the decompressed content (zstd, gzip)" placeholder:"FORMAT"`
}

// Run executes the verify command
func (c *VerifyCmd) Run(ctx *kong.Context) error {
	_, verbose := globalFlags(ctx)
	return c.runWithLogger(NewLogger(verbose), os.Stdin)
}

// runWithLogger streams the content through a digest verifier and reports the verdict.
func (c *VerifyCmd) runWithLogger(logger *Logger, stdin io.Reader) error {
	expected, err := digest.Parse(c.Digest)
	if err != nil {
		logger.Error("Invalid digest %q: %v", c.Digest, err)
		logger.Error("Digests have the form <algorithm>:<lowercase hex>, e.g. sha256:<64 hex digits>")
		return fmt.Errorf("invalid digest %q: %w", c.Digest, err)
	}

	format, err := port.ParseCompression(c.Decompress)
	if err != nil {
		logger.Error("Invalid --decompress value: %v", err)
		return err
	}

	logger.Verbose("Verifying %s against %s", c.Path, expected)

	err = c.verify(context.Background(), expected, format, stdin)

	var mismatch *digest.MismatchError
	switch {
	case err == nil:
		logger.Info("%s: OK", c.Path)
		return nil
	case errors.As(err, &mismatch):
		logger.Error("%s: FAILED", c.Path)
		logger.Error("  Expected: %s", mismatch.Expected)
		logger.Error("  Actual:   %s", mismatch.Actual)
		return err
	default:
		logger.Error("Failed to verify %s: %v", c.Path, err)
		return err
	}
}

func (c *VerifyCmd) verify(ctx context.Context, expected digest.Digest, format port.Compression, stdin io.Reader) error {
	if c.Path == stdinPath {
		r, err := adapter.NewDecompressor(format, stdin)
		if err != nil {
			return err
		}
		defer r.Close()

		_, err = io.Copy(io.Discard, expected.Verify(r))
		return err
	}

	svc := adapter.NewFileDigestService()
	if format.IsCompressed() {
		return svc.VerifyDecompressed(ctx, c.Path, format, expected)
	}
	return svc.Verify(ctx, c.Path, expected)
}
