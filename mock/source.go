package mock

import (
	"context"

	"github.com/fwojciec/wikinews"
)

var _ wikinews.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of wikinews.PageSource.
type PageSource struct {
	PageTextFn func(ctx context.Context, page string) (string, error)
}

func (s *PageSource) PageText(ctx context.Context, page string) (string, error) {
	return s.PageTextFn(ctx, page)
}
