// Package fs provides file-based discovery and storage for the manifest.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/snapdex"
)

// Ensure Walker implements snapdex.Walker at compile time.
var _ snapdex.Walker = (*Walker)(nil)

// Walker finds archived documents on the local filesystem.
type Walker struct {
	exts map[string]bool
}

// NewWalker creates a Walker that collects files with the given extensions.
// Extensions are matched case-insensitively, with or without a leading dot.
// With no extensions, snapdex.DefaultExtensions is used.
func NewWalker(exts ...string) *Walker {
	if len(exts) == 0 {
		exts = snapdex.DefaultExtensions
	}
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		m[ext] = true
	}
	return &Walker{exts: m}
}

// Walk returns the absolute paths of matching files under root, depth-first
// in directory listing order. Symlinks to regular files are included;
// symlinked directories are not followed.
func (w *Walker) Walk(ctx context.Context, root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, snapdex.Errorf(snapdex.ENOTFOUND, "directory %q not found", root)
	} else if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, snapdex.Errorf(snapdex.EINVALID, "%q is not a directory", root)
	}

	// WalkDir does not descend into a root that is itself a symlink.
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(resolved, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !w.Match(path) {
			return nil
		}
		if d.Type()&iofs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.Join(abs, rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Match reports whether path has one of the walker's extensions.
func (w *Walker) Match(path string) bool {
	return w.exts[strings.ToLower(filepath.Ext(path))]
}
