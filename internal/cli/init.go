package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/internal/domain"
)

// InitCmd represents the init command
type InitCmd struct{}

// Run executes the init command
func (c *InitCmd) Run(ctx *kong.Context) error {
	manifestPath, verbose := globalFlags(ctx)
	return c.run(manifestPath, verbose)
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *InitCmd) run(manifestPath string, verbose bool) error {
	return c.runWithLogger(manifestPath, NewLogger(verbose))
}

// runWithLogger executes the init command with a custom logger (for testing)
func (c *InitCmd) runWithLogger(manifestPath string, logger *Logger) error {
	logger.Verbose("Creating manifest at %s", manifestPath)

	manifestManager := domain.NewManifestManager(manifestPath)
	if err := manifestManager.Initialize(context.Background()); err != nil {
		if errors.Is(err, domain.ErrManifestExists) {
			logger.Error("Manifest already exists at %s", manifestPath)
			logger.Error("Remove the existing file or use a different path with --manifest")
			return err
		}

		logger.Error("Failed to create manifest: %v", err)
		logger.Error("Check file permissions and try again")
		return err
	}

	logger.Info("Initialized %s", manifestPath)
	logger.Info("Record content with 'ocidigest add <name> <path>'")
	return nil
}
