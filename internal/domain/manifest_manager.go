package domain

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/semver"
)

// File permission constants for manifest files
const (
	manifestFileMode fs.FileMode = 0o644 // User: rw, Group: r, Others: r
)

// ManifestManager manages the reading and writing of the ocidigest.toml manifest.
type ManifestManager struct {
	manifestPath string
}

// NewManifestManager creates a new ManifestManager instance.
// Relative entry paths are resolved against the directory holding manifestPath.
func NewManifestManager(manifestPath string) *ManifestManager {
	return &ManifestManager{manifestPath: manifestPath}
}

// Path returns the manifest file path.
func (m *ManifestManager) Path() string {
	return m.manifestPath
}

// Resolve returns the filesystem path of an entry path recorded in the manifest.
func (m *ManifestManager) Resolve(entryPath string) string {
	if filepath.IsAbs(entryPath) {
		return entryPath
	}
	return filepath.Join(filepath.Dir(m.manifestPath), filepath.FromSlash(entryPath))
}

// Initialize creates a new, empty manifest file.
// It returns ErrManifestExists if the manifest file already exists.
func (m *ManifestManager) Initialize(ctx context.Context) error {
	if _, err := os.Stat(m.manifestPath); err == nil {
		return fmt.Errorf("%w: manifest already exists at %s. Remove the existing file or use a different path", ErrManifestExists, m.manifestPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check manifest file existence: %w", err)
	}

	return m.Save(ctx, &Manifest{
		Version: CurrentVersion,
		Entries: []*Entry{},
	})
}

// Load reads and validates the manifest file.
// A missing file is reported as *ManifestNotFoundError.
func (m *ManifestManager) Load(ctx context.Context) (*Manifest, error) {
	data, err := os.ReadFile(m.manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ManifestNotFoundError{Path: m.manifestPath}
		}
		return nil, fmt.Errorf("failed to read manifest file at %s: %w. Check file permissions", m.manifestPath, err)
	}

	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest file at %s: %w. Ensure the file is valid TOML format", m.manifestPath, err)
	}

	if err := checkVersion(manifest.Version); err != nil {
		return nil, err
	}

	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("manifest validation failed: %w", err)
	}

	return &manifest, nil
}

// checkVersion accepts any valid semantic version with the same major version as CurrentVersion.
func checkVersion(version string) error {
	if !semver.IsValid(version) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, version)
	}
	if semver.Major(version) != semver.Major(CurrentVersion) {
		return fmt.Errorf("%w: %s. This build reads %s manifests", ErrUnsupportedVersion, version, semver.Major(CurrentVersion))
	}
	return nil
}

// Save validates the manifest and writes it to the manifest file.
func (m *ManifestManager) Save(ctx context.Context, manifest *Manifest) error {
	if manifest.Version == "" {
		manifest.Version = CurrentVersion
	}
	if err := checkVersion(manifest.Version); err != nil {
		return err
	}
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	data, err := toml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(m.manifestPath, data, manifestFileMode); err != nil {
		return fmt.Errorf("failed to write manifest file to %s: %w. Check file permissions and directory existence", m.manifestPath, err)
	}

	return nil
}

// AddEntry adds a new entry to the manifest.
// It returns ErrEntryExists if an entry with the same name already exists.
func (m *ManifestManager) AddEntry(ctx context.Context, entry *Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("entry validation failed: %w", err)
	}

	manifest, err := m.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	if manifest.HasEntry(entry.Name) {
		return fmt.Errorf("%w: entry '%s' already exists in manifest", ErrEntryExists, entry.Name)
	}
	manifest.Entries = append(manifest.Entries, entry)

	if err := m.Save(ctx, manifest); err != nil {
		return fmt.Errorf("failed to save manifest after adding entry '%s': %w", entry.Name, err)
	}

	return nil
}

// UpdateEntry replaces the recorded fields of an existing entry.
// It returns ErrEntryNotFound if the entry does not exist.
func (m *ManifestManager) UpdateEntry(ctx context.Context, entry *Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("entry validation failed: %w", err)
	}

	manifest, err := m.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	existing := manifest.FindEntryByName(entry.Name)
	if existing == nil {
		return fmt.Errorf("%w: entry '%s' not found in manifest", ErrEntryNotFound, entry.Name)
	}
	*existing = *entry

	if err := m.Save(ctx, manifest); err != nil {
		return fmt.Errorf("failed to save manifest after updating entry '%s': %w", entry.Name, err)
	}

	return nil
}

// RemoveEntry removes an entry from the manifest.
// It returns ErrEntryNotFound if the entry does not exist.
func (m *ManifestManager) RemoveEntry(ctx context.Context, name string) error {
	manifest, err := m.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	index := -1
	for i, entry := range manifest.Entries {
		if entry.Name == name {
			index = i
			break
		}
	}
	if index == -1 {
		return fmt.Errorf("%w: entry '%s' not found in manifest", ErrEntryNotFound, name)
	}

	manifest.Entries = append(manifest.Entries[:index], manifest.Entries[index+1:]...)

	if err := m.Save(ctx, manifest); err != nil {
		return fmt.Errorf("failed to save manifest after removing entry '%s': %w", name, err)
	}

	return nil
}

// ListEntries returns all entries from the manifest.
func (m *ManifestManager) ListEntries(ctx context.Context) ([]*Entry, error) {
	manifest, err := m.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return manifest.Entries, nil
}
