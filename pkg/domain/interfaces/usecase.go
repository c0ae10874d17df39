package interfaces

import (
	"context"

	"github.com/modcheck/modcheck/pkg/domain/model"
)

// ReleaseDecoder decodes raw release records.
type ReleaseDecoder interface {
	// Decode decodes one record. A malformed embedded payload is reported
	// as a warning log, not an error; the Release is still returned.
	Decode(ctx context.Context, raw *model.RawRelease) (*model.Release, error)

	// DecodeAll decodes a batch of records. Records are independent, so
	// decoding runs concurrently; result order matches input order. The
	// returned error joins per-record failures and may accompany a
	// non-empty result when only some records were malformed.
	DecodeAll(ctx context.Context, raws []*model.RawRelease) ([]*model.Release, error)
}

// IntegrityVerifier checks a compatibility descriptor against the running
// environment and the installed files.
type IntegrityVerifier interface {
	Verify(ctx context.Context, desc *model.CompatibilityDescriptor, env model.Environment, resources ResourceReader) (*model.VerificationResult, error)
}

// UpdateChecker runs the full fetch, decode and verify workflow.
type UpdateChecker interface {
	Check(ctx context.Context, req *model.CheckRequest) (*model.CheckResult, error)
}
