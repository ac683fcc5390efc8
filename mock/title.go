package mock

import (
	"context"

	"github.com/fwojciec/snapdex"
)

var _ snapdex.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor is a mock implementation of snapdex.TitleExtractor.
type TitleExtractor struct {
	ExtractTitleFn func(ctx context.Context, path string) (string, error)
}

func (e *TitleExtractor) ExtractTitle(ctx context.Context, path string) (string, error) {
	return e.ExtractTitleFn(ctx, path)
}
