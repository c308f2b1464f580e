package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/adapter"
	"github.com/mazrean/ocidigest/internal/domain"
	"github.com/mazrean/ocidigest/internal/port"
)

// LayerCmd represents the layer command
type LayerCmd struct {
	Src       string           `arg:"" help:"Uncompressed layer content (usually a tar archive)"`
	Dst       string           `arg:"" help:"Path of the compressed layer blob to write"`
	Format    string           `help:"Compression format (zstd, gzip)" default:"zstd"`
	Record    string           `help:"Record the layer in the manifest under this name" placeholder:"NAME"`
	Algorithm digest.Algorithm `help:"Digest algorithm (sha256, sha384, sha512)" short:"a" default:"sha256"`
}

// Run executes the layer command
func (c *LayerCmd) Run(ctx *kong.Context) error {
	manifestPath, verbose := globalFlags(ctx)
	return c.runWithLogger(manifestPath, NewLogger(verbose))
}

// runWithLogger builds the layer and prints its descriptor.
func (c *LayerCmd) runWithLogger(manifestPath string, logger *Logger) error {
	format, err := port.ParseCompression(c.Format)
	if err != nil {
		logger.Error("Invalid --format value: %v", err)
		return err
	}
	if !format.IsCompressed() {
		logger.Error("A layer needs a compression format")
		return fmt.Errorf("%w: layers must be compressed with zstd or gzip", port.ErrUnsupportedCompression)
	}

	ctx := context.Background()
	logger.Verbose("Compressing %s into %s (%s, %s)", c.Src, c.Dst, format, c.Algorithm)

	desc, err := adapter.BuildLayer(ctx, c.Src, c.Dst, format, c.Algorithm)
	if err != nil {
		logger.Error("Failed to build layer: %v", err)
		return err
	}

	logger.Info("digest:  %s", desc.Digest)
	logger.Info("diff_id: %s", desc.DiffID)
	logger.Info("size:    %d", desc.Size)

	if c.Record == "" {
		return nil
	}

	path, err := entryPath(manifestPath, c.Dst)
	if err != nil {
		logger.Error("Failed to resolve %s: %v", c.Dst, err)
		return err
	}

	entry := &domain.Entry{
		Name:        c.Record,
		Path:        path,
		Compression: format,
		Digest:      desc.Digest,
		DiffID:      &desc.DiffID,
	}
	if err := domain.NewManifestManager(manifestPath).AddEntry(ctx, entry); err != nil {
		logger.Error("Failed to record layer '%s': %v", c.Record, err)
		return err
	}
	logger.Info("Recorded '%s' in %s", c.Record, manifestPath)

	return nil
}
