package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mazrean/ocidigest/internal/domain"
)

// newManifestDir creates a temporary directory holding an initialized manifest.
func newManifestDir(t *testing.T) (dir, manifestPath string) {
	t.Helper()
	dir = t.TempDir()
	manifestPath = filepath.Join(dir, defaultManifestPath)
	if err := domain.NewManifestManager(manifestPath).Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize manifest: %v", err)
	}
	return dir, manifestPath
}

// writeTestFile writes content to dir/name and returns the full path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
