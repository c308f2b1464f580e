package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/internal/domain"
)

// ListCmd represents the list command
type ListCmd struct{}

// Run executes the list command
func (c *ListCmd) Run(ctx *kong.Context) error {
	manifestPath, verbose := globalFlags(ctx)
	return c.run(manifestPath, verbose)
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *ListCmd) run(manifestPath string, verbose bool) error {
	return c.runWithLogger(manifestPath, NewLogger(verbose))
}

// runWithLogger executes the list command with a custom logger (for testing)
func (c *ListCmd) runWithLogger(manifestPath string, logger *Logger) error {
	logger.Verbose("Loading entries from %s", manifestPath)

	entries, err := domain.NewManifestManager(manifestPath).ListEntries(context.Background())
	if err != nil {
		reportLoadError(logger, manifestPath, err, "load entries")
		return err
	}

	if len(entries) == 0 {
		logger.Info("No entries recorded")
		logger.Info("Use 'ocidigest add <name> <path>' to record content")
		return nil
	}

	logger.Info("%-20s %-30s %-6s %s", "NAME", "PATH", "COMP", "DIGEST")
	for _, entry := range entries {
		logger.Info("%-20s %-30s %-6s %s", entry.Name, entry.Path, entry.Compression, entry.Digest)
		if entry.DiffID != nil {
			logger.Verbose("%-20s diff_id %s", entry.Name, entry.DiffID)
		}
	}
	logger.Info("")
	logger.Info("Total: %d entries", len(entries))

	return nil
}
