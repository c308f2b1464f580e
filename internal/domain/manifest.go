// Package domain provides the manifest model and the operations that record,
// refresh and check the digests of local content.
package domain

import (
	"fmt"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/port"
)

// CurrentVersion is the manifest schema version written by Initialize.
const CurrentVersion = "v1.0.0"

// Manifest represents the entire ocidigest.toml file.
type Manifest struct {
	Version string   `toml:"version"`
	Entries []*Entry `toml:"entries"`
}

// Entry records the expected digest of one local file or directory.
// Compressed blobs may also record the digest of their decompressed content.
type Entry struct {
	DiffID      *digest.Digest   `toml:"diff_id,omitempty"`
	Name        string           `toml:"name"`
	Path        string           `toml:"path"`
	Compression port.Compression `toml:"compression,omitempty"`
	Digest      digest.Digest    `toml:"digest"`
}

// Validate checks that all required fields are present and consistent.
func (e *Entry) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEntry)
	}
	if e.Path == "" {
		return fmt.Errorf("%w: entry '%s' has no path", ErrInvalidEntry, e.Name)
	}
	if e.Digest.IsZero() {
		return fmt.Errorf("%w: entry '%s' has no digest", ErrInvalidEntry, e.Name)
	}
	if !e.Compression.Valid() {
		return fmt.Errorf("%w: entry '%s': %w", ErrInvalidEntry, e.Name, port.ErrUnsupportedCompression)
	}
	if e.DiffID != nil && !e.Compression.IsCompressed() {
		return fmt.Errorf("%w: entry '%s' has a diff_id but no compression", ErrInvalidEntry, e.Name)
	}
	return nil
}

// FindEntryByName returns the entry with the given name, or nil if there is none.
func (m *Manifest) FindEntryByName(name string) *Entry {
	for _, entry := range m.Entries {
		if entry.Name == name {
			return entry
		}
	}
	return nil
}

// HasEntry checks if an entry with the given name exists.
func (m *Manifest) HasEntry(name string) bool {
	return m.FindEntryByName(name) != nil
}

// Validate checks for duplicate names and validates each entry.
func (m *Manifest) Validate() error {
	names := make(map[string]bool, len(m.Entries))
	for _, entry := range m.Entries {
		if names[entry.Name] {
			return fmt.Errorf("%w: entry '%s' is listed twice", ErrEntryExists, entry.Name)
		}
		names[entry.Name] = true

		if err := entry.Validate(); err != nil {
			return err
		}
	}
	return nil
}
