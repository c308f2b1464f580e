package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/adapter"
	"github.com/mazrean/ocidigest/internal/domain"
)

// DiffCmd represents the diff command
type DiffCmd struct {
	Old       string           `arg:"" help:"Old directory tree"`
	New       string           `arg:"" help:"New directory tree"`
	Algorithm digest.Algorithm `help:"Digest algorithm (sha256, sha384, sha512)" short:"a" default:"sha256"`
	ExitCode  bool             `help:"Exit with a non-zero status when the trees differ" name:"exit-code"`
}

// Run executes the diff command
func (c *DiffCmd) Run(ctx *kong.Context) error {
	_, verbose := globalFlags(ctx)
	return c.runWithLogger(NewLogger(verbose))
}

// runWithLogger prints one line per changed file followed by its patch, if any.
func (c *DiffCmd) runWithLogger(logger *Logger) error {
	diffs, err := domain.DiffTrees(context.Background(), adapter.NewFileDigestService(), c.Old, c.New, c.Algorithm)
	if err != nil {
		logger.Error("Failed to compare %s and %s: %v", c.Old, c.New, err)
		return err
	}

	if len(diffs) == 0 {
		logger.Info("No differences")
		return nil
	}

	for _, d := range diffs {
		switch d.Status {
		case domain.FileDiffAdded:
			logger.Info("A %s", d.Path)
			logger.Verbose("  new: %s", d.New)
		case domain.FileDiffRemoved:
			logger.Info("D %s", d.Path)
			logger.Verbose("  old: %s", d.Old)
		case domain.FileDiffModified:
			logger.Info("M %s", d.Path)
			logger.Verbose("  old: %s", d.Old)
			logger.Verbose("  new: %s", d.New)
			if d.Patch != "" {
				logger.Info("%s", strings.TrimSuffix(d.Patch, "\n"))
			}
		}
	}

	if c.ExitCode {
		return fmt.Errorf("%d file(s) differ", len(diffs))
	}
	return nil
}
