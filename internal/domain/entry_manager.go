package domain

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/port"
)

// EntryManager records and refreshes the digests stored in the manifest.
// It measures content through the DigestService and persists through the ManifestManager.
type EntryManager struct {
	manifestManager *ManifestManager
	digestService   port.DigestService
	limit           int
}

// UpdateResult represents the result of refreshing a single entry.
type UpdateResult struct {
	OldDiffID *digest.Digest // Previously recorded diff ID, if any
	NewDiffID *digest.Digest // Diff ID of the current content, if any
	Name      string         // Name of the refreshed entry
	Old       digest.Digest  // Previously recorded digest
	New       digest.Digest  // Digest of the current content
}

// Changed reports whether the content no longer matches what was recorded.
func (r *UpdateResult) Changed() bool {
	if r.Old != r.New {
		return true
	}
	if (r.OldDiffID == nil) != (r.NewDiffID == nil) {
		return true
	}
	return r.OldDiffID != nil && *r.OldDiffID != *r.NewDiffID
}

// NewEntryManager creates a new EntryManager instance.
// Update measures at most GOMAXPROCS entries at a time.
func NewEntryManager(manifestManager *ManifestManager, digestService port.DigestService) *EntryManager {
	return &EntryManager{
		manifestManager: manifestManager,
		digestService:   digestService,
		limit:           runtime.GOMAXPROCS(0),
	}
}

// SetLimit sets the number of entries Update measures concurrently.
// A negative value removes the limit.
func (m *EntryManager) SetLimit(n int) {
	m.limit = n
}

// Add measures the content at path and records it under name.
// For compressed content the digest of the decompressed stream is recorded as diff_id.
func (m *EntryManager) Add(ctx context.Context, name, path string, alg digest.Algorithm, compression port.Compression) (*Entry, error) {
	entry := &Entry{
		Name:        name,
		Path:        path,
		Compression: compression,
	}

	manifest, err := m.manifestManager.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	if manifest.HasEntry(name) {
		return nil, fmt.Errorf("%w: entry '%s' already exists in manifest. Use 'ocidigest update %s' to refresh it", ErrEntryExists, name, name)
	}

	if err := m.measure(ctx, entry, alg); err != nil {
		return nil, err
	}

	if err := m.manifestManager.AddEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Update recomputes the digests of the named entries. If names is empty, every entry is refreshed.
// When dryRun is true the manifest is left untouched.
func (m *EntryManager) Update(ctx context.Context, names []string, dryRun bool) ([]*UpdateResult, error) {
	manifest, err := m.manifestManager.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	var entries []*Entry
	var missing []string
	for _, name := range names {
		entry := manifest.FindEntryByName(name)
		if entry == nil {
			missing = append(missing, name)
			continue
		}
		entries = append(entries, entry)
	}
	if len(missing) > 0 {
		return nil, &EntriesNotFoundError{Names: missing}
	}
	if len(names) == 0 {
		entries = manifest.Entries
	}

	results := make([]*UpdateResult, len(entries))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(m.limit)
	for i, entry := range entries {
		eg.Go(func() error {
			result := &UpdateResult{
				Name:      entry.Name,
				Old:       entry.Digest,
				OldDiffID: entry.DiffID,
			}

			// Each goroutine owns its entry, so it is measured in place.
			if err := m.measure(egCtx, entry, entry.Digest.Algorithm()); err != nil {
				return err
			}

			result.New = entry.Digest
			result.NewDiffID = entry.DiffID
			results[i] = result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if !dryRun {
		if err := m.manifestManager.Save(ctx, manifest); err != nil {
			return nil, fmt.Errorf("failed to save manifest: %w", err)
		}
	}

	return results, nil
}

// measure fills in the digest and, for compressed entries, the diff ID of entry.
func (m *EntryManager) measure(ctx context.Context, entry *Entry, alg digest.Algorithm) error {
	path := m.manifestManager.Resolve(entry.Path)

	d, err := m.digestService.Compute(ctx, path, alg)
	if err != nil {
		return fmt.Errorf("failed to compute digest for entry '%s' at %s: %w", entry.Name, path, err)
	}
	entry.Digest = d

	entry.DiffID = nil
	if entry.Compression.IsCompressed() {
		diffID, err := m.digestService.ComputeDecompressed(ctx, path, entry.Compression, alg)
		if err != nil {
			return fmt.Errorf("failed to compute diff ID for entry '%s' at %s: %w. Check that the file is %s compressed", entry.Name, path, err, entry.Compression)
		}
		entry.DiffID = &diffID
	}

	return nil
}
