package resource

import "strings"

// resolveName maps (anchor, path) to a slash-separated entry name following
// the class-relative resource lookup rules the producer side assumes: a
// path with a leading "/" is taken from the root, anything else from the
// package directory of the anchor. Anchor "a.b.C" has package directory
// "a/b", so ("a.b.C", "y.class") resolves to "a/b/y.class".
func resolveName(anchor, path string) string {
	if strings.HasPrefix(path, "/") {
		return strings.TrimPrefix(path, "/")
	}
	if i := strings.LastIndex(anchor, "."); i >= 0 {
		if pkg := strings.ReplaceAll(anchor[:i], ".", "/"); pkg != "" {
			return pkg + "/" + path
		}
	}
	return path
}
