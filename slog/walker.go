// Package slog provides logging decorators for snapdex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/snapdex"
)

// Ensure LoggingWalker implements snapdex.Walker.
var _ snapdex.Walker = (*LoggingWalker)(nil)

// LoggingWalker wraps a Walker with logging.
type LoggingWalker struct {
	next   snapdex.Walker
	logger *slog.Logger
}

// NewLoggingWalker creates a new LoggingWalker.
func NewLoggingWalker(next snapdex.Walker, logger *slog.Logger) *LoggingWalker {
	return &LoggingWalker{next: next, logger: logger}
}

// Walk delegates to the wrapped walker and logs the operation.
func (w *LoggingWalker) Walk(ctx context.Context, root string) (paths []string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("archive walk",
			"root", root,
			"count", len(paths),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Walk(ctx, root)
}
