package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/snapdex"
)

// Ensure ManifestWriter implements snapdex.ManifestWriter at compile time.
var _ snapdex.ManifestWriter = (*ManifestWriter)(nil)

// ManifestWriter writes the manifest as a JSON file.
type ManifestWriter struct {
	path string
}

// NewManifestWriter creates a new ManifestWriter that writes to path.
func NewManifestWriter(path string) *ManifestWriter {
	return &ManifestWriter{path: path}
}

// Path returns the output file path.
func (w *ManifestWriter) Path() string {
	return w.path
}

// WriteManifest encodes the manifest and replaces the output file.
func (w *ManifestWriter) WriteManifest(ctx context.Context, m snapdex.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := snapdex.EncodeManifest(m)
	if err != nil {
		return err
	}
	return WriteFile(w.path, data)
}

// WriteFile replaces the file at path with data. The bytes are written to
// path+".tmp" first and renamed into place, so readers never observe a
// partially written file. Parent directories are created as needed.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
