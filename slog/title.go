package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/snapdex"
)

// Ensure LoggingTitleExtractor implements snapdex.TitleExtractor.
var _ snapdex.TitleExtractor = (*LoggingTitleExtractor)(nil)

// LoggingTitleExtractor wraps a TitleExtractor with debug logging.
type LoggingTitleExtractor struct {
	next   snapdex.TitleExtractor
	logger *slog.Logger
}

// NewLoggingTitleExtractor creates a new LoggingTitleExtractor.
func NewLoggingTitleExtractor(next snapdex.TitleExtractor, logger *slog.Logger) *LoggingTitleExtractor {
	return &LoggingTitleExtractor{next: next, logger: logger}
}

// ExtractTitle delegates to the wrapped extractor and logs at debug level.
func (e *LoggingTitleExtractor) ExtractTitle(ctx context.Context, path string) (title string, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("title extraction",
			"path", path,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractTitle(ctx, path)
}
