package resource

import (
	"archive/zip"
	"context"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modcheck/modcheck/pkg/domain/types"
)

// JarReader reads resources out of an installed mod jar. A jar is a plain
// zip archive, so entries are addressed by slash-separated names.
type JarReader struct {
	path string
}

// NewJarReader creates a reader over the jar at path. The archive is opened
// per read, so the reader holds no file handle between calls and is safe
// for concurrent use.
func NewJarReader(path string) *JarReader {
	return &JarReader{path: path}
}

// Read returns the bytes of the resource (anchor, path) names.
func (r *JarReader) Read(ctx context.Context, anchor, path string) ([]byte, error) {
	return r.ReadEntry(ctx, resolveName(anchor, path))
}

// ReadEntry returns the bytes of a jar entry by its exact name.
func (r *JarReader) ReadEntry(_ context.Context, name string) ([]byte, error) {
	zr, err := zip.OpenReader(r.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open jar", goerr.V("jar", r.path))
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open jar entry",
				goerr.V("jar", r.path), goerr.V("entry", name))
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read jar entry",
				goerr.V("jar", r.path), goerr.V("entry", name))
		}
		return data, nil
	}

	return nil, goerr.Wrap(types.ErrResourceNotFound, "no such jar entry",
		goerr.V("jar", r.path), goerr.V("entry", name))
}

// List returns the names of all file entries in the jar, in archive order.
func (r *JarReader) List(_ context.Context) ([]string, error) {
	zr, err := zip.OpenReader(r.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open jar", goerr.V("jar", r.path))
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		names = append(names, f.Name)
	}
	return names, nil
}
