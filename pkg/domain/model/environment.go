package model

// Environment identifies the running host: the game version in use and the
// loader the mod was installed through.
type Environment struct {
	Version string `json:"version"`
	Loader  string `json:"loader"`
}

// CheckRequest describes one update-check run.
type CheckRequest struct {
	Owner string // Repository owner
	Repo  string // Repository name

	// Tag pins the check to one specific release. Empty means the newest
	// release matching the environment.
	Tag string

	// InstalledTag is the tag of the currently installed release, used to
	// decide whether an update is available. May be empty.
	InstalledTag string

	// Prereleases allows prereleases to be selected.
	Prereleases bool

	Env Environment
}

// CheckResult is the outcome of one update-check run.
type CheckResult struct {
	// Release is the release that was checked.
	Release *Release

	// UpdateAvailable is true when the selected release differs from the
	// installed tag.
	UpdateAvailable bool

	// Verification is nil when the release carries no compatibility
	// metadata; compatibility is then unknown, not failed.
	Verification *VerificationResult
}
