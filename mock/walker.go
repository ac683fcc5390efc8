package mock

import (
	"context"

	"github.com/fwojciec/snapdex"
)

var _ snapdex.Walker = (*Walker)(nil)

// Walker is a mock implementation of snapdex.Walker.
type Walker struct {
	WalkFn func(ctx context.Context, root string) ([]string, error)
}

func (w *Walker) Walk(ctx context.Context, root string) ([]string, error) {
	return w.WalkFn(ctx, root)
}
