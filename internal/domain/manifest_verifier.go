package domain

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/port"
)

// VerifyResult represents the result of verifying a single entry.
type VerifyResult struct {
	Err          error          // Error that prevented verification (missing file, I/O failure)
	ActualDiffID *digest.Digest // Digest of the decompressed content, when a diff_id is recorded
	Name         string         // Name of the entry being verified
	Path         string         // Resolved filesystem path
	Expected     digest.Digest  // Digest recorded in the manifest
	Actual       digest.Digest  // Digest of the content on disk
	Match        bool           // Whether the content matches everything recorded
}

// VerifySummary represents the summary of verifying all entries.
type VerifySummary struct {
	Results      []*VerifyResult // Detailed results in manifest order
	TotalEntries int             // Total number of entries verified
	SuccessCount int             // Number of entries that matched
	FailureCount int             // Number of entries that did not match or could not be read
}

// ManifestVerifier checks local content against the digests recorded in the manifest.
type ManifestVerifier struct {
	manifestManager *ManifestManager
	digestService   port.DigestService
	limit           int
}

// NewManifestVerifier creates a new ManifestVerifier instance.
// VerifyAll checks at most GOMAXPROCS entries at a time.
func NewManifestVerifier(manifestManager *ManifestManager, digestService port.DigestService) *ManifestVerifier {
	return &ManifestVerifier{
		manifestManager: manifestManager,
		digestService:   digestService,
		limit:           runtime.GOMAXPROCS(0),
	}
}

// SetLimit sets the number of entries VerifyAll checks concurrently.
// A negative value removes the limit.
func (v *ManifestVerifier) SetLimit(n int) {
	v.limit = n
}

// Verify verifies the entry with the given name.
// Problems reading the content are recorded in VerifyResult.Err.
func (v *ManifestVerifier) Verify(ctx context.Context, name string) (*VerifyResult, error) {
	manifest, err := v.manifestManager.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	entry := manifest.FindEntryByName(name)
	if entry == nil {
		return nil, &EntriesNotFoundError{Names: []string{name}}
	}

	return v.verifyEntry(ctx, entry), nil
}

// VerifyAll verifies every entry of the manifest concurrently.
func (v *ManifestVerifier) VerifyAll(ctx context.Context) (*VerifySummary, error) {
	manifest, err := v.manifestManager.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	results := make([]*VerifyResult, len(manifest.Entries))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(v.limit)
	for i, entry := range manifest.Entries {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = v.verifyEntry(egCtx, entry)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("verification interrupted: %w", err)
	}

	summary := &VerifySummary{
		Results:      results,
		TotalEntries: len(results),
	}
	for _, result := range results {
		if result.Match {
			summary.SuccessCount++
		} else {
			summary.FailureCount++
		}
	}

	return summary, nil
}

func (v *ManifestVerifier) verifyEntry(ctx context.Context, entry *Entry) *VerifyResult {
	result := &VerifyResult{
		Name:     entry.Name,
		Path:     v.manifestManager.Resolve(entry.Path),
		Expected: entry.Digest,
	}

	actual, match, err := checkDigest(v.digestService.Verify(ctx, result.Path, entry.Digest), entry.Digest)
	if err != nil {
		result.Err = fmt.Errorf("failed to verify entry '%s' at %s: %w", entry.Name, result.Path, err)
		return result
	}
	result.Actual = actual
	result.Match = match

	if entry.DiffID != nil {
		verifyErr := v.digestService.VerifyDecompressed(ctx, result.Path, entry.Compression, *entry.DiffID)
		actualDiffID, diffMatch, err := checkDigest(verifyErr, *entry.DiffID)
		if err != nil {
			result.Err = fmt.Errorf("failed to verify decompressed content of entry '%s' at %s: %w", entry.Name, result.Path, err)
			result.Match = false
			return result
		}
		result.ActualDiffID = &actualDiffID
		result.Match = result.Match && diffMatch
	}

	return result
}

// checkDigest splits the outcome of a verification into the measured digest and
// whether it matched. Errors other than a mismatch are returned as is.
func checkDigest(verifyErr error, expected digest.Digest) (digest.Digest, bool, error) {
	if verifyErr == nil {
		return expected, true, nil
	}

	var mismatch *digest.MismatchError
	if errors.As(verifyErr, &mismatch) {
		return mismatch.Actual, false, nil
	}
	return digest.Digest{}, false, verifyErr
}
