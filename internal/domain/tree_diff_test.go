package domain_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/adapter"
	"github.com/mazrean/ocidigest/internal/domain"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestDiffTrees(t *testing.T) {
	oldDir := t.TempDir()
	newDir := t.TempDir()
	writeFiles(t, oldDir, map[string]string{
		"same.txt":      "unchanged\n",
		"edit.txt":      "line one\nline two\n",
		"gone.txt":      "bye\n",
		"bin/tool":      "\x00old",
		"nested/keep.c": "int main;\n",
	})
	writeFiles(t, newDir, map[string]string{
		"same.txt":      "unchanged\n",
		"edit.txt":      "line one\nline 2\n",
		"new.txt":       "hello\n",
		"bin/tool":      "\x00new",
		"nested/keep.c": "int main;\n",
	})

	diffs, err := domain.DiffTrees(context.Background(), adapter.NewFileDigestService(), oldDir, newDir, digest.SHA256)
	if err != nil {
		t.Fatalf("DiffTrees() error: %v", err)
	}

	want := []struct {
		path   string
		status domain.FileDiffStatus
	}{
		{"bin/tool", domain.FileDiffModified},
		{"edit.txt", domain.FileDiffModified},
		{"gone.txt", domain.FileDiffRemoved},
		{"new.txt", domain.FileDiffAdded},
	}
	if len(diffs) != len(want) {
		t.Fatalf("DiffTrees() returned %d diffs, want %d: %+v", len(diffs), len(want), diffs)
	}
	for i, w := range want {
		if diffs[i].Path != w.path || diffs[i].Status != w.status {
			t.Errorf("diffs[%d] = %s %s, want %s %s", i, diffs[i].Path, diffs[i].Status, w.path, w.status)
		}
	}

	edit := diffs[1]
	if !strings.Contains(edit.Patch, "-line two\n") || !strings.Contains(edit.Patch, "+line 2\n") {
		t.Errorf("patch for edit.txt = %q", edit.Patch)
	}
	if edit.Old != digest.Sum(digest.SHA256, []byte("line one\nline two\n")) {
		t.Errorf("Old digest = %s", edit.Old)
	}
	if diffs[0].Patch != "" {
		t.Errorf("binary files should have no patch, got %q", diffs[0].Patch)
	}
	if !diffs[2].New.IsZero() || !diffs[3].Old.IsZero() {
		t.Error("removed files should have no new digest and added files no old digest")
	}
}

func TestDiffTrees_MissingOldTree(t *testing.T) {
	newDir := t.TempDir()
	writeFiles(t, newDir, map[string]string{"a": "1", "b/c": "2"})

	diffs, err := domain.DiffTrees(context.Background(), adapter.NewFileDigestService(), filepath.Join(t.TempDir(), "absent"), newDir, digest.SHA256)
	if err != nil {
		t.Fatalf("DiffTrees() error: %v", err)
	}
	if len(diffs) != 2 {
		t.Fatalf("DiffTrees() returned %d diffs, want 2", len(diffs))
	}
	for _, d := range diffs {
		if d.Status != domain.FileDiffAdded {
			t.Errorf("%s status = %s, want added", d.Path, d.Status)
		}
	}
}
