package git

import (
	"context"
	"path/filepath"
)

// IsRepository reports whether the working directory is inside a git
// repository.
func (r *Repository) IsRepository(ctx context.Context) bool {
	_, ok := r.tolerant(ctx, "rev-parse", "--git-dir")
	return ok
}

// Root returns the top-level directory of the work tree.
func (r *Repository) Root(ctx context.Context) (string, bool) {
	out, ok := r.tolerant(ctx, "rev-parse", "--show-toplevel")
	if !ok || out == "" {
		return "", false
	}
	return out, true
}

// RootName is the directory name of the work tree, used when there is no
// remote to name the project by.
func (r *Repository) RootName(ctx context.Context) (string, bool) {
	root, ok := r.Root(ctx)
	if !ok {
		return "", false
	}
	return filepath.Base(root), true
}
