package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/adapter"
	"github.com/mazrean/ocidigest/internal/domain"
	"github.com/mazrean/ocidigest/internal/port"
)

// AddCmd represents the add command
type AddCmd struct {
	Name        string           `arg:"" help:"Entry name"`
	Path        string           `arg:"" help:"File or directory to record"`
	Compression string           `help:"Compression of the file; records the decompressed digest as diff_id (zstd, gzip)" placeholder:"FORMAT"`
	Algorithm   digest.Algorithm `help:"Digest algorithm (sha256, sha384, sha512)" short:"a" default:"sha256"`
}

// Run executes the add command
func (c *AddCmd) Run(ctx *kong.Context) error {
	manifestPath, verbose := globalFlags(ctx)
	return c.run(manifestPath, verbose)
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *AddCmd) run(manifestPath string, verbose bool) error {
	return c.runWithDeps(manifestPath, NewLogger(verbose), adapter.NewFileDigestService())
}

// runWithDeps is the internal implementation with dependency injection for testing
func (c *AddCmd) runWithDeps(manifestPath string, logger *Logger, digestService port.DigestService) error {
	compression, err := port.ParseCompression(c.Compression)
	if err != nil {
		logger.Error("Invalid --compression value: %v", err)
		return err
	}

	path, err := entryPath(manifestPath, c.Path)
	if err != nil {
		logger.Error("Failed to resolve %s: %v", c.Path, err)
		return err
	}
	logger.Verbose("Recording %s as '%s' (stored path %s)", c.Path, c.Name, path)

	entryManager := domain.NewEntryManager(domain.NewManifestManager(manifestPath), digestService)
	entry, err := entryManager.Add(context.Background(), c.Name, path, c.Algorithm, compression)
	if err != nil {
		if errors.Is(err, domain.ErrEntryExists) {
			logger.Error("Entry '%s' already exists", c.Name)
			logger.Error("Use 'ocidigest update %s' to refresh it or choose another name", c.Name)
			return err
		}
		reportLoadError(logger, manifestPath, err, "add entry '"+c.Name+"'")
		return err
	}

	logger.Info("Added '%s': %s", entry.Name, entry.Digest)
	if entry.DiffID != nil {
		logger.Info("  diff_id: %s", entry.DiffID)
	}
	return nil
}
