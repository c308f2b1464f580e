package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/internal/adapter"
	"github.com/mazrean/ocidigest/internal/domain"
	"github.com/mazrean/ocidigest/internal/port"
)

// UpdateCmd represents the update command
type UpdateCmd struct {
	Names  []string `arg:"" optional:"" help:"Entry names to refresh (if not specified, refreshes all entries)"`
	DryRun bool     `help:"Show what would change without writing the manifest" name:"dry-run"`
	Jobs   int      `help:"Number of entries measured concurrently (0 uses all CPUs)" short:"j" default:"0"`
}

// Run executes the update command
func (c *UpdateCmd) Run(ctx *kong.Context) error {
	manifestPath, verbose := globalFlags(ctx)
	return c.run(manifestPath, verbose)
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *UpdateCmd) run(manifestPath string, verbose bool) error {
	return c.runWithDeps(manifestPath, NewLogger(verbose), adapter.NewFileDigestService())
}

// runWithDeps is the internal implementation with dependency injection for testing
func (c *UpdateCmd) runWithDeps(manifestPath string, logger *Logger, digestService port.DigestService) error {
	if c.DryRun {
		logger.Verbose("Checking recorded digests without saving")
	}

	entryManager := domain.NewEntryManager(domain.NewManifestManager(manifestPath), digestService)
	if c.Jobs > 0 {
		entryManager.SetLimit(c.Jobs)
	}
	results, err := entryManager.Update(context.Background(), c.Names, c.DryRun)
	if err != nil {
		reportLoadError(logger, manifestPath, err, "refresh entries")
		return err
	}

	changed := 0
	for _, result := range results {
		if !result.Changed() {
			logger.Verbose("%s: unchanged", result.Name)
			continue
		}
		changed++
		logger.Info("%s: %s -> %s", result.Name, result.Old, result.New)
		if result.NewDiffID != nil && (result.OldDiffID == nil || *result.OldDiffID != *result.NewDiffID) {
			logger.Info("  diff_id: %s", result.NewDiffID)
		}
	}

	switch {
	case changed == 0:
		logger.Info("All %d entries are up to date", len(results))
	case c.DryRun:
		logger.Info("%d of %d entries would change (dry run, manifest not written)", changed, len(results))
	default:
		logger.Info("Updated %d of %d entries", changed, len(results))
	}
	return nil
}
