package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/digest"
)

// ParseCmd represents the parse command
type ParseCmd struct {
	Digests []string `arg:"" help:"Digests to validate"`
}

// Run executes the parse command
func (c *ParseCmd) Run(ctx *kong.Context) error {
	_, verbose := globalFlags(ctx)
	return c.runWithLogger(NewLogger(verbose))
}

// runWithLogger prints the canonical form, algorithm and size of every valid digest.
func (c *ParseCmd) runWithLogger(logger *Logger) error {
	invalid := 0
	for _, s := range c.Digests {
		d, err := digest.Parse(s)
		if err != nil {
			logger.Error("%s: %v", s, err)
			invalid++
			continue
		}

		if d.String() != s {
			logger.Verbose("%s is written in the legacy unqualified form", s)
		}
		logger.Info("%s\t%s\t%d", d, d.Algorithm(), d.Size())
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d digest(s) are invalid", invalid, len(c.Digests))
	}
	return nil
}
