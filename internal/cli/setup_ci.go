package cli

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

// SetupCICmd represents the setup-ci command
type SetupCICmd struct {
	Output string `help:"Path of the generated workflow file" default:".github/workflows/ocidigest-check.yml" type:"path"`
	Force  bool   `help:"Overwrite an existing workflow file" short:"f"`
}

// Run executes the setup-ci command
func (c *SetupCICmd) Run(ctx *kong.Context) error {
	manifestPath, verbose := globalFlags(ctx)
	return c.runWithLogger(manifestPath, NewLogger(verbose))
}

const (
	// setupCIDirPerm is the permission for directories created by setup-ci (rwxr-xr-x).
	setupCIDirPerm = 0o755
	// setupCIFilePerm is the permission for files written by setup-ci (rw-r--r--).
	setupCIFilePerm = 0o644

	manifestPlaceholder = "__MANIFEST__"
)

//go:embed templates/ocidigest-check.yml
var checkWorkflow []byte

// runWithLogger writes a GitHub Actions workflow that runs 'ocidigest check' against manifestPath.
func (c *SetupCICmd) runWithLogger(manifestPath string, logger *Logger) error {
	if _, err := os.Stat(c.Output); err == nil && !c.Force {
		logger.Error("%s already exists", c.Output)
		logger.Error("Use --force to overwrite it")
		return fmt.Errorf("workflow %s already exists: %w", c.Output, os.ErrExist)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", c.Output, err)
	}

	workflow, err := renderCheckWorkflow(manifestPath, c.Output)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.Output), setupCIDirPerm); err != nil {
		return fmt.Errorf("failed to create workflow directory: %w", err)
	}
	if err := os.WriteFile(c.Output, workflow, setupCIFilePerm); err != nil {
		return fmt.Errorf("failed to write workflow file: %w", err)
	}

	logger.Info("Created %s", c.Output)
	logger.Verbose("The workflow verifies %s on every push and pull request", manifestPath)
	return nil
}

// renderCheckWorkflow fills the manifest location into the workflow template.
// Workflows run from the repository root, which is assumed to be two levels above
// a workflow placed in .github/workflows.
func renderCheckWorkflow(manifestPath, workflowPath string) ([]byte, error) {
	repoRoot, err := filepath.Abs(filepath.Join(filepath.Dir(workflowPath), "..", ".."))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository root: %w", err)
	}
	absManifest, err := filepath.Abs(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", manifestPath, err)
	}
	rel, err := filepath.Rel(repoRoot, absManifest)
	if err != nil {
		return nil, fmt.Errorf("manifest %s is outside the repository: %w", manifestPath, err)
	}

	return bytes.ReplaceAll(checkWorkflow, []byte(manifestPlaceholder), []byte(filepath.ToSlash(rel))), nil
}
