package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/internal/adapter"
	"github.com/mazrean/ocidigest/internal/domain"
	"github.com/mazrean/ocidigest/internal/port"
)

// CheckCmd represents the check command
type CheckCmd struct {
	Jobs int `help:"Number of entries verified concurrently (0 uses all CPUs)" short:"j" default:"0"`
}

// Run executes the check command
func (c *CheckCmd) Run(ctx *kong.Context) error {
	manifestPath, verbose := globalFlags(ctx)
	return c.run(manifestPath, verbose)
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *CheckCmd) run(manifestPath string, verbose bool) error {
	return c.runWithDeps(manifestPath, NewLogger(verbose), adapter.NewFileDigestService())
}

// runWithDeps verifies every entry and fails when any entry does not match.
func (c *CheckCmd) runWithDeps(manifestPath string, logger *Logger, digestService port.DigestService) error {
	logger.Verbose("Verifying entries recorded in %s", manifestPath)

	verifier := domain.NewManifestVerifier(domain.NewManifestManager(manifestPath), digestService)
	if c.Jobs > 0 {
		verifier.SetLimit(c.Jobs)
	}

	summary, err := verifier.VerifyAll(context.Background())
	if err != nil {
		reportLoadError(logger, manifestPath, err, "verify entries")
		return err
	}

	if summary.TotalEntries == 0 {
		logger.Info("No entries to verify")
		return nil
	}

	for _, result := range summary.Results {
		switch {
		case result.Match:
			logger.Info("%s: OK", result.Name)
		case result.Err != nil:
			logger.Info("%s: FAILED", result.Name)
			logger.Warn("%v", result.Err)
		default:
			logger.Info("%s: FAILED", result.Name)
			logger.Warn("digest mismatch for '%s' at %s", result.Name, result.Path)
			logger.Error("  Expected: %s", result.Expected)
			logger.Error("  Actual:   %s", result.Actual)
			if result.ActualDiffID != nil {
				logger.Error("  Actual diff_id: %s", result.ActualDiffID)
			}
		}
	}

	logger.Info("")
	logger.Info("Verified %d entries: %d OK, %d failed", summary.TotalEntries, summary.SuccessCount, summary.FailureCount)

	if summary.FailureCount > 0 {
		logger.Error("The content may have been modified or corrupted")
		logger.Error("Run 'ocidigest update' if the changes are expected")
		return fmt.Errorf("%w: %d of %d entries", domain.ErrVerificationFailed, summary.FailureCount, summary.TotalEntries)
	}
	return nil
}
