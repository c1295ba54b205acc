package mock

import (
	"context"

	"github.com/fwojciec/poiscout"
)

var _ poiscout.PageReader = (*PageReader)(nil)

// PageReader is a mock implementation of poiscout.PageReader.
type PageReader struct {
	ReadPageFn func(ctx context.Context, page *poiscout.PageContent) (*poiscout.PageFindings, error)
}

func (r *PageReader) ReadPage(ctx context.Context, page *poiscout.PageContent) (*poiscout.PageFindings, error) {
	return r.ReadPageFn(ctx, page)
}
