package model

// FileOutcome classifies the integrity check of one declared file.
type FileOutcome string

const (
	// OutcomeMatched means the resource was read and its digest is one of
	// the acceptable values.
	OutcomeMatched FileOutcome = "matched"

	// OutcomeMismatched means the resource was read but its digest is not
	// in the acceptable set. Points at tampering or a different build.
	OutcomeMismatched FileOutcome = "mismatched"

	// OutcomeUnreadable means the resource could not be read at all. A
	// different problem than a mismatch, remediated differently, so the two
	// are never conflated.
	OutcomeUnreadable FileOutcome = "unreadable"
)

// FileResult is the verification outcome for one declared file.
type FileResult struct {
	Anchor  string      `json:"anchor"`
	Path    string      `json:"path"`
	Outcome FileOutcome `json:"outcome"`
}

// VerificationResult aggregates the compatibility verdict and the outcome
// of every declared file check. Files has exactly one entry per FileCheck
// of the descriptor, in declaration order; verification never stops at the
// first failure.
type VerificationResult struct {
	VersionOK  bool `json:"versionOk"`
	LoaderOK   bool `json:"loaderOk"`
	Compatible bool `json:"compatible"` // VersionOK && LoaderOK

	Files []FileResult `json:"files"`
}

// AllFilesMatched reports whether every declared file matched.
func (r *VerificationResult) AllFilesMatched() bool {
	for _, f := range r.Files {
		if f.Outcome != OutcomeMatched {
			return false
		}
	}
	return true
}
