package domain_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/adapter"
	"github.com/mazrean/ocidigest/internal/domain"
	"github.com/mazrean/ocidigest/internal/port"
)

// writeContent writes content next to the manifest and returns the relative entry path.
func writeContent(t *testing.T, mm *domain.ManifestManager, rel string, content []byte) string {
	t.Helper()
	path := mm.Resolve(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return rel
}

func zstdBytes(t *testing.T, content []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("failed to create zstd encoder: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(content, nil)
}

func TestManifestVerifier_Verify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		setupFunc func(t *testing.T, mm *domain.ManifestManager)
		checkFunc func(t *testing.T, result *domain.VerifyResult)
		wantErr   error
		name      string
		entryName string
	}{
		{
			name:      "matching file",
			entryName: "blob",
			setupFunc: func(t *testing.T, mm *domain.ManifestManager) {
				path := writeContent(t, mm, "blob.bin", []byte("content"))
				if err := mm.AddEntry(ctx, &domain.Entry{Name: "blob", Path: path, Digest: digest.Sum(digest.SHA256, []byte("content"))}); err != nil {
					t.Fatalf("AddEntry() error: %v", err)
				}
			},
			checkFunc: func(t *testing.T, result *domain.VerifyResult) {
				if !result.Match || result.Err != nil {
					t.Errorf("expected match, got Match=%v Err=%v", result.Match, result.Err)
				}
				if result.Actual != result.Expected {
					t.Errorf("Actual = %s, want %s", result.Actual, result.Expected)
				}
			},
		},
		{
			name:      "modified file",
			entryName: "blob",
			setupFunc: func(t *testing.T, mm *domain.ManifestManager) {
				path := writeContent(t, mm, "blob.bin", []byte("tampered"))
				if err := mm.AddEntry(ctx, &domain.Entry{Name: "blob", Path: path, Digest: digest.Sum(digest.SHA256, []byte("content"))}); err != nil {
					t.Fatalf("AddEntry() error: %v", err)
				}
			},
			checkFunc: func(t *testing.T, result *domain.VerifyResult) {
				if result.Match {
					t.Error("expected match to be false")
				}
				if result.Err != nil {
					t.Errorf("a mismatch should not be reported as Err, got %v", result.Err)
				}
				if want := digest.Sum(digest.SHA256, []byte("tampered")); result.Actual != want {
					t.Errorf("Actual = %s, want %s", result.Actual, want)
				}
			},
		},
		{
			name:      "missing file",
			entryName: "gone",
			setupFunc: func(t *testing.T, mm *domain.ManifestManager) {
				if err := mm.AddEntry(ctx, &domain.Entry{Name: "gone", Path: "gone.bin", Digest: digest.Sum(digest.SHA256, nil)}); err != nil {
					t.Fatalf("AddEntry() error: %v", err)
				}
			},
			checkFunc: func(t *testing.T, result *domain.VerifyResult) {
				if result.Match || result.Err == nil {
					t.Errorf("expected an error result, got Match=%v Err=%v", result.Match, result.Err)
				}
			},
		},
		{
			name:      "compressed blob with diff_id",
			entryName: "layer",
			setupFunc: func(t *testing.T, mm *domain.ManifestManager) {
				plain := []byte("uncompressed tar stream")
				blob := zstdBytes(t, plain)
				path := writeContent(t, mm, "layer.tar.zst", blob)
				diffID := digest.Sum(digest.SHA256, plain)
				entry := &domain.Entry{
					Name:        "layer",
					Path:        path,
					Digest:      digest.Sum(digest.SHA256, blob),
					Compression: port.CompressionZstd,
					DiffID:      &diffID,
				}
				if err := mm.AddEntry(ctx, entry); err != nil {
					t.Fatalf("AddEntry() error: %v", err)
				}
			},
			checkFunc: func(t *testing.T, result *domain.VerifyResult) {
				if !result.Match {
					t.Errorf("expected match, got Err=%v", result.Err)
				}
				if result.ActualDiffID == nil {
					t.Fatal("ActualDiffID should be set for entries with a diff_id")
				}
			},
		},
		{
			name:      "unknown entry",
			entryName: "nope",
			setupFunc: func(t *testing.T, mm *domain.ManifestManager) {},
			wantErr:   domain.ErrEntryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mm := newManifest(t)
			tt.setupFunc(t, mm)

			verifier := domain.NewManifestVerifier(mm, adapter.NewFileDigestService())
			result, err := verifier.Verify(ctx, tt.entryName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Verify() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify() unexpected error: %v", err)
			}
			tt.checkFunc(t, result)
		})
	}
}

func TestManifestVerifier_VerifyAll(t *testing.T) {
	ctx := context.Background()
	mm := newManifest(t)

	for i, content := range []string{"one", "two", "three", "four", "five"} {
		name := content
		path := writeContent(t, mm, filepath.Join("data", name), []byte(content))
		recorded := digest.Sum(digest.SHA256, []byte(content))
		if i%2 == 1 {
			recorded = digest.Sum(digest.SHA256, []byte("stale"))
		}
		if err := mm.AddEntry(ctx, &domain.Entry{Name: name, Path: path, Digest: recorded}); err != nil {
			t.Fatalf("AddEntry() error: %v", err)
		}
	}

	verifier := domain.NewManifestVerifier(mm, adapter.NewFileDigestService())
	verifier.SetLimit(2)

	summary, err := verifier.VerifyAll(ctx)
	if err != nil {
		t.Fatalf("VerifyAll() unexpected error: %v", err)
	}
	if summary.TotalEntries != 5 || summary.SuccessCount != 3 || summary.FailureCount != 2 {
		t.Errorf("summary = total %d, success %d, failure %d, want 5/3/2",
			summary.TotalEntries, summary.SuccessCount, summary.FailureCount)
	}
	for i, want := range []string{"one", "two", "three", "four", "five"} {
		if summary.Results[i].Name != want {
			t.Errorf("Results[%d].Name = %s, want %s (manifest order)", i, summary.Results[i].Name, want)
		}
	}
}

func TestManifestVerifier_VerifyAll_Empty(t *testing.T) {
	verifier := domain.NewManifestVerifier(newManifest(t), adapter.NewFileDigestService())

	summary, err := verifier.VerifyAll(context.Background())
	if err != nil {
		t.Fatalf("VerifyAll() unexpected error: %v", err)
	}
	if summary.TotalEntries != 0 || len(summary.Results) != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}

func TestManifestVerifier_VerifyAll_Canceled(t *testing.T) {
	mm := newManifest(t)
	path := writeContent(t, mm, "x", bytes.Repeat([]byte("x"), 10))
	if err := mm.AddEntry(context.Background(), &domain.Entry{Name: "x", Path: path, Digest: digest.Sum(digest.SHA256, nil)}); err != nil {
		t.Fatalf("AddEntry() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	verifier := domain.NewManifestVerifier(mm, adapter.NewFileDigestService())
	if _, err := verifier.VerifyAll(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("VerifyAll() error = %v, want %v", err, context.Canceled)
	}
}

func TestManifestVerifier_MissingManifest(t *testing.T) {
	mm := domain.NewManifestManager(filepath.Join(t.TempDir(), "ocidigest.toml"))
	verifier := domain.NewManifestVerifier(mm, adapter.NewFileDigestService())

	if _, err := verifier.VerifyAll(context.Background()); !errors.Is(err, domain.ErrManifestNotFound) {
		t.Errorf("VerifyAll() error = %v, want %v", err, domain.ErrManifestNotFound)
	}
}
