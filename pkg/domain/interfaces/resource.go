package interfaces

import "context"

// ResourceReader reads named resources of the installed mod. A path
// starting with "/" is resolved from the installation root; otherwise it is
// resolved relative to the anchor's namespace directory. A missing resource
// fails with types.ErrResourceNotFound.
type ResourceReader interface {
	Read(ctx context.Context, anchor, path string) ([]byte, error)
}
