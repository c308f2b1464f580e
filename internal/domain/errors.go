package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain-level error identification.
var (
	// ErrManifestNotFound indicates that the manifest file was not found.
	ErrManifestNotFound = errors.New("manifest file not found")

	// ErrManifestExists indicates that a manifest file already exists.
	ErrManifestExists = errors.New("manifest file already exists")

	// ErrUnsupportedVersion indicates that the manifest schema version cannot be read by this build.
	ErrUnsupportedVersion = errors.New("unsupported manifest version")

	// ErrEntryNotFound indicates that the requested entry was not found.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEntryExists indicates that an entry with the same name already exists.
	ErrEntryExists = errors.New("entry already exists")

	// ErrInvalidEntry indicates that an entry has invalid field values.
	ErrInvalidEntry = errors.New("invalid manifest entry")

	// ErrVerificationFailed indicates that at least one entry did not match its recorded digest.
	ErrVerificationFailed = errors.New("verification failed")
)

// ManifestNotFoundError reports the path of a missing manifest file.
type ManifestNotFoundError struct {
	Path string
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("%s at %s. Run 'ocidigest init' to create one", ErrManifestNotFound, e.Path)
}

func (e *ManifestNotFoundError) Is(target error) bool {
	return target == ErrManifestNotFound
}

// EntriesNotFoundError reports the names that are missing from the manifest.
type EntriesNotFoundError struct {
	Names []string
}

func (e *EntriesNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s. Run 'ocidigest list' to see recorded entries", ErrEntryNotFound, strings.Join(e.Names, ", "))
}

func (e *EntriesNotFoundError) Is(target error) bool {
	return target == ErrEntryNotFound
}
