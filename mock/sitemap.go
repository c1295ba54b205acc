package mock

import (
	"context"

	"github.com/fwojciec/poiscout"
)

var _ poiscout.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of poiscout.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *poiscout.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *poiscout.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
