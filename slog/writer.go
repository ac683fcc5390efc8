package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/snapdex"
)

// Ensure LoggingManifestWriter implements snapdex.ManifestWriter.
var _ snapdex.ManifestWriter = (*LoggingManifestWriter)(nil)

// LoggingManifestWriter wraps a ManifestWriter with logging.
type LoggingManifestWriter struct {
	next   snapdex.ManifestWriter
	name   string
	logger *slog.Logger
}

// NewLoggingManifestWriter creates a new LoggingManifestWriter. The name
// identifies the output in log lines, typically its file path.
func NewLoggingManifestWriter(next snapdex.ManifestWriter, name string, logger *slog.Logger) *LoggingManifestWriter {
	return &LoggingManifestWriter{next: next, name: name, logger: logger}
}

// WriteManifest delegates to the wrapped writer and logs the operation.
func (w *LoggingManifestWriter) WriteManifest(ctx context.Context, m snapdex.Manifest) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("manifest write",
			"output", w.name,
			"count", len(m),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteManifest(ctx, m)
}
