package port_test

import (
	"context"
	"testing"

	"github.com/mazrean/ocidigest/digest"
	"github.com/mazrean/ocidigest/internal/port"
)

// TestDigestServiceInterface verifies that the DigestService interface contract
// can be satisfied by a mock implementation.
func TestDigestServiceInterface(t *testing.T) {
	var svc port.DigestService = &mockDigestService{}

	got, err := svc.Compute(context.Background(), "any", digest.SHA384)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	if got.Algorithm() != digest.SHA384 {
		t.Errorf("Compute() algorithm = %v, want %v", got.Algorithm(), digest.SHA384)
	}
	if err := svc.Verify(context.Background(), "any", got); err != nil {
		t.Errorf("Verify() unexpected error: %v", err)
	}
}

// mockDigestService digests every path as if it were empty.
type mockDigestService struct{}

func (m *mockDigestService) Compute(ctx context.Context, path string, alg digest.Algorithm) (digest.Digest, error) {
	return digest.Sum(alg, nil), nil
}

func (m *mockDigestService) ComputeDecompressed(ctx context.Context, path string, format port.Compression, alg digest.Algorithm) (digest.Digest, error) {
	return digest.Sum(alg, nil), nil
}

func (m *mockDigestService) Verify(ctx context.Context, path string, expected digest.Digest) error {
	if actual := digest.Sum(expected.Algorithm(), nil); actual != expected {
		return &digest.MismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

func (m *mockDigestService) VerifyDecompressed(ctx context.Context, path string, format port.Compression, expected digest.Digest) error {
	return m.Verify(ctx, path, expected)
}
