package mock

import (
	"context"

	"github.com/fwojciec/snapdex"
)

var _ snapdex.ManifestWriter = (*ManifestWriter)(nil)

// ManifestWriter is a mock implementation of snapdex.ManifestWriter.
type ManifestWriter struct {
	WriteManifestFn func(ctx context.Context, m snapdex.Manifest) error
}

func (w *ManifestWriter) WriteManifest(ctx context.Context, m snapdex.Manifest) error {
	return w.WriteManifestFn(ctx, m)
}
