package interfaces

import (
	"context"

	"github.com/modcheck/modcheck/pkg/domain/model"
)

// ReleaseSource lists published releases of a mod. Implementations own the
// network I/O; records come back raw and are decoded by the caller.
type ReleaseSource interface {
	// ListReleases returns all releases of the repository, newest first.
	ListReleases(ctx context.Context, owner, repo string) ([]*model.RawRelease, error)

	// GetReleaseByTag returns the release published under tag.
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.RawRelease, error)
}
