package model

import "slices"

// CompatibilityDescriptor is the structured data a release hides in its
// changelog: which game versions and loader it targets, and which installed
// files must hash to which values.
type CompatibilityDescriptor struct {
	// PrimaryVersion is the main supported game version.
	PrimaryVersion string `json:"primaryVersion"`

	// CompatibleVersions lists every acceptable game version. By producer
	// convention it usually includes PrimaryVersion; duplicates are
	// tolerated and order carries no meaning.
	CompatibleVersions []string `json:"compatibleVersions"`

	// Loader identifies the loader/distribution channel this release
	// targets (e.g. Forge, liteloader).
	Loader string `json:"loader"`

	// AnnouncementPost links to an external announcement. nil means the
	// payload carried an explicit null; absent and empty string are
	// distinct states and must stay that way.
	AnnouncementPost *string `json:"announcementPost,omitempty"`

	FileChecks []FileCheck `json:"fileChecks"`
}

// SupportsVersion reports whether v is the primary version or one of the
// compatible versions. Comparison is exact string equality, no
// normalization.
func (d *CompatibilityDescriptor) SupportsVersion(v string) bool {
	return v == d.PrimaryVersion || slices.Contains(d.CompatibleVersions, v)
}

// FileCheck names one installed file whose content hash must equal one of
// the acceptable values.
type FileCheck struct {
	// Anchor is the namespace identifier the path is resolved against,
	// the way class-relative resource lookup works.
	Anchor string `json:"anchor"`

	// Path is the resource path to hash, relative to Anchor unless it
	// starts with "/".
	Path string `json:"path"`

	// AcceptableHashes holds every digest currently considered valid for
	// this file, as uppercase hexadecimal. A release can ship several
	// binary variants of one file, hence multiple values. Never empty:
	// a check with no acceptable values is rejected at decode time.
	AcceptableHashes []string `json:"acceptableHashes"`
}

// SameFile reports whether two checks refer to the same file. Only Anchor
// and Path participate: AcceptableHashes is deliberately excluded so the
// identity of "which file" stays independent of "which values are currently
// valid for it". Do not extend this to compare hashes.
func (c FileCheck) SameFile(other FileCheck) bool {
	return c.Anchor == other.Anchor && c.Path == other.Path
}

// HashAccepted reports whether digest is one of the acceptable values.
// Exact string equality; callers must supply uppercase hex.
func (c FileCheck) HashAccepted(digest string) bool {
	return slices.Contains(c.AcceptableHashes, digest)
}
