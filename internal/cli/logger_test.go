package cli

import (
	"bytes"
	"strings"
	"testing"
)

// newTestLogger returns a logger writing to buffers instead of the process streams.
func newTestLogger(verbose bool) (logger *Logger, out, errOut *bytes.Buffer) {
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	return &Logger{out: out, errOut: errOut, verbose: verbose}, out, errOut
}

func TestLogger_Info(t *testing.T) {
	logger, out, _ := newTestLogger(false)

	logger.Info("%s  %s", "sha256:abc", "file.txt")

	if got, want := out.String(), "sha256:abc  file.txt\n"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestLogger_Error(t *testing.T) {
	logger, out, errOut := newTestLogger(false)

	logger.Error("Error: %s", "test error")

	if got, want := errOut.String(), "Error: test error\n"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if out.Len() != 0 {
		t.Errorf("Error() should not write to stdout, got %q", out.String())
	}
}

func TestLogger_Warn(t *testing.T) {
	logger, _, errOut := newTestLogger(false)

	logger.Warn("digest mismatch for %s", "layer")

	if got, want := errOut.String(), "WARNING: digest mismatch for layer\n"; got != want {
		t.Errorf("Warn() = %q, want %q", got, want)
	}
}

func TestLogger_Verbose(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		want    bool
	}{
		{name: "verbose enabled", verbose: true, want: true},
		{name: "verbose disabled", verbose: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, out, errOut := newTestLogger(tt.verbose)

			logger.Verbose("Debug info: %d", 42)

			got := errOut.String()
			if !tt.want {
				if got != "" {
					t.Errorf("Verbose() should not print when disabled, got %q", got)
				}
				return
			}
			if !strings.Contains(got, "[VERBOSE]") || !strings.Contains(got, "Debug info: 42") {
				t.Errorf("Verbose() = %q, want prefixed message", got)
			}
			if out.Len() != 0 {
				t.Errorf("Verbose() should keep stdout clean, got %q", out.String())
			}
		})
	}
}

func TestLogger_SetVerbose(t *testing.T) {
	logger := NewLogger(false)

	if logger.IsVerbose() {
		t.Error("Logger should start with verbose disabled")
	}

	logger.SetVerbose(true)
	if !logger.IsVerbose() {
		t.Error("Logger verbose should be enabled after SetVerbose(true)")
	}

	logger.SetVerbose(false)
	if logger.IsVerbose() {
		t.Error("Logger verbose should be disabled after SetVerbose(false)")
	}
}
