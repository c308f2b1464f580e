package cli

import (
	"errors"
	"path/filepath"
	"reflect"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/internal/domain"
)

const (
	// defaultManifestPath is the default path to the manifest file
	defaultManifestPath = "ocidigest.toml"
)

// globalFlags reads the top-level --manifest and --verbose flags from the parsed CLI model.
func globalFlags(ctx *kong.Context) (manifestPath string, verbose bool) {
	manifestPath = defaultManifestPath
	if ctx == nil {
		return manifestPath, false
	}
	if model := ctx.Model; model != nil && model.Target.IsValid() {
		if verboseField := model.Target.FieldByName("Verbose"); verboseField.IsValid() && verboseField.Kind() == reflect.Bool {
			verbose = verboseField.Bool()
		}
		if manifestField := model.Target.FieldByName("Manifest"); manifestField.IsValid() && manifestField.Kind() == reflect.String && manifestField.String() != "" {
			manifestPath = manifestField.String()
		}
	}
	return manifestPath, verbose
}

// entryPath converts a path given on the command line into the form stored in the manifest:
// relative to the manifest's directory when possible, absolute otherwise.
func entryPath(manifestPath, path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absDir, err := filepath.Abs(filepath.Dir(manifestPath))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return absPath, nil
	}
	return filepath.ToSlash(rel), nil
}

// reportLoadError reports manifest errors with cause and recommended action.
func reportLoadError(logger *Logger, manifestPath string, err error, action string) {
	switch {
	case errors.Is(err, domain.ErrManifestNotFound):
		logger.Error("Manifest not found at %s", manifestPath)
		logger.Error("Run 'ocidigest init' to create one, or point --manifest at an existing file")
	case errors.Is(err, domain.ErrUnsupportedVersion):
		logger.Error("Manifest at %s uses an unsupported version: %v", manifestPath, err)
		logger.Error("Upgrade ocidigest to read this manifest")
	case errors.Is(err, domain.ErrEntryNotFound):
		logger.Error("Failed to %s: %v", action, err)
	default:
		logger.Error("Failed to %s: %v", action, err)
		logger.Error("Check file permissions and the manifest contents")
	}
}
