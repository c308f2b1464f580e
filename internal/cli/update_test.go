package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/adapter"
	"github.com/mazrean/ocidigest/internal/domain"
)

// addEntries records each name→content pair as a file entry in the manifest.
func addEntries(t *testing.T, dir, manifestPath string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		cmd := &AddCmd{Name: name, Path: writeTestFile(t, dir, name+".txt", content), Algorithm: digest.SHA256}
		logger, _, _ := newTestLogger(false)
		if err := cmd.runWithDeps(manifestPath, logger, adapter.NewFileDigestService()); err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
	}
}

func TestUpdateCmd_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantErrType error
		checkFunc   func(t *testing.T, manifest *domain.Manifest, out string)
		cmd         *UpdateCmd
		name        string
		wantErr     bool
	}{
		{
			name: "success: refreshes all entries",
			cmd:  &UpdateCmd{},
			checkFunc: func(t *testing.T, manifest *domain.Manifest, out string) {
				if got := manifest.FindEntryByName("a").Digest; got != digest.Sum(digest.SHA256, []byte("changed")) {
					t.Errorf("entry a digest = %s, want digest of new content", got)
				}
				if !strings.Contains(out, "Updated 1 of 2 entries") {
					t.Errorf("output = %q, want update summary", out)
				}
			},
		},
		{
			name: "success: dry run leaves manifest untouched",
			cmd:  &UpdateCmd{DryRun: true},
			checkFunc: func(t *testing.T, manifest *domain.Manifest, out string) {
				if got := manifest.FindEntryByName("a").Digest; got != digest.Sum(digest.SHA256, []byte("original")) {
					t.Errorf("entry a digest = %s, dry run should not save", got)
				}
				if !strings.Contains(out, "would change") {
					t.Errorf("output = %q, want dry run summary", out)
				}
			},
		},
		{
			name: "success: named entry only",
			cmd:  &UpdateCmd{Names: []string{"b"}},
			checkFunc: func(t *testing.T, manifest *domain.Manifest, out string) {
				if got := manifest.FindEntryByName("a").Digest; got != digest.Sum(digest.SHA256, []byte("original")) {
					t.Errorf("entry a should not be refreshed, got %s", got)
				}
				if !strings.Contains(out, "All 1 entries are up to date") {
					t.Errorf("output = %q, want up to date message", out)
				}
			},
		},
		{
			name:        "error: unknown entry",
			cmd:         &UpdateCmd{Names: []string{"missing"}},
			wantErr:     true,
			wantErrType: domain.ErrEntryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir, manifestPath := newManifestDir(t)
			addEntries(t, dir, manifestPath, map[string]string{"a": "original", "b": "stable"})
			writeTestFile(t, dir, "a.txt", "changed")

			logger, out, _ := newTestLogger(false)
			err := tt.cmd.runWithDeps(manifestPath, logger, adapter.NewFileDigestService())
			if (err != nil) != tt.wantErr {
				t.Fatalf("runWithDeps() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErrType != nil && !errors.Is(err, tt.wantErrType) {
				t.Errorf("runWithDeps() error = %v, want %v", err, tt.wantErrType)
			}
			if tt.checkFunc == nil {
				return
			}

			manifest, err := domain.NewManifestManager(manifestPath).Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			tt.checkFunc(t, manifest, out.String())
		})
	}
}

func TestUpdateCmd_Run_MissingContent(t *testing.T) {
	dir, manifestPath := newManifestDir(t)
	addEntries(t, dir, manifestPath, map[string]string{"a": "original"})
	if err := os.Remove(filepath.Join(dir, "a.txt")); err != nil {
		t.Fatalf("failed to remove content: %v", err)
	}

	logger, _, _ := newTestLogger(false)
	if err := (&UpdateCmd{}).runWithDeps(manifestPath, logger, adapter.NewFileDigestService()); err == nil {
		t.Error("runWithDeps() should fail when recorded content is missing")
	}
}
