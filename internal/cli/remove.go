package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/internal/domain"
)

// RemoveCmd represents the remove command
type RemoveCmd struct {
	Name string `arg:"" help:"Name of the entry to remove from the manifest"`
}

// Run executes the remove command
func (c *RemoveCmd) Run(ctx *kong.Context) error {
	manifestPath, verbose := globalFlags(ctx)
	return c.run(manifestPath, verbose)
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *RemoveCmd) run(manifestPath string, verbose bool) error {
	return c.runWithLogger(manifestPath, NewLogger(verbose))
}

// runWithLogger removes the entry; the recorded file itself is left in place.
func (c *RemoveCmd) runWithLogger(manifestPath string, logger *Logger) error {
	logger.Verbose("Removing '%s' from %s", c.Name, manifestPath)

	if err := domain.NewManifestManager(manifestPath).RemoveEntry(context.Background(), c.Name); err != nil {
		reportLoadError(logger, manifestPath, err, "remove entry '"+c.Name+"'")
		return err
	}

	logger.Info("Removed '%s'", c.Name)
	return nil
}
