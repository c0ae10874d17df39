package resource

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modcheck/modcheck/pkg/domain/types"
)

// DirReader reads resources from an extracted installation directory using
// the same name resolution as JarReader.
type DirReader struct {
	root string
}

// NewDirReader creates a reader rooted at dir.
func NewDirReader(dir string) *DirReader {
	return &DirReader{root: dir}
}

// Read returns the bytes of the resource (anchor, path) names.
func (r *DirReader) Read(_ context.Context, anchor, path string) ([]byte, error) {
	name := resolveName(anchor, path)

	full := filepath.Join(r.root, filepath.FromSlash(name))
	if !strings.HasPrefix(full, filepath.Clean(r.root)+string(os.PathSeparator)) {
		return nil, goerr.New("resource path escapes the installation directory",
			goerr.V("root", r.root), goerr.V("entry", name))
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(types.ErrResourceNotFound, "no such file",
				goerr.V("root", r.root), goerr.V("entry", name))
		}
		return nil, goerr.Wrap(err, "failed to read file",
			goerr.V("root", r.root), goerr.V("entry", name))
	}
	return data, nil
}
