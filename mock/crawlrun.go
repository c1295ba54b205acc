package mock

import (
	"context"

	"github.com/fwojciec/poiscout"
)

var _ poiscout.CrawlService = (*CrawlService)(nil)

// CrawlService is a mock implementation of poiscout.CrawlService.
type CrawlService struct {
	CreateCrawlFn   func(ctx context.Context, crawl *poiscout.Crawl) error
	FindCrawlByIDFn func(ctx context.Context, id string) (*poiscout.Crawl, error)
	FindCrawlsFn    func(ctx context.Context, filter poiscout.CrawlFilter) ([]*poiscout.Crawl, error)
	UpdateCrawlFn   func(ctx context.Context, id string, upd poiscout.CrawlUpdate) (*poiscout.Crawl, error)
	DeleteCrawlFn   func(ctx context.Context, id string) error
}

func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *poiscout.Crawl) error {
	return s.CreateCrawlFn(ctx, crawl)
}

func (s *CrawlService) FindCrawlByID(ctx context.Context, id string) (*poiscout.Crawl, error) {
	return s.FindCrawlByIDFn(ctx, id)
}

func (s *CrawlService) FindCrawls(ctx context.Context, filter poiscout.CrawlFilter) ([]*poiscout.Crawl, error) {
	return s.FindCrawlsFn(ctx, filter)
}

func (s *CrawlService) UpdateCrawl(ctx context.Context, id string, upd poiscout.CrawlUpdate) (*poiscout.Crawl, error) {
	return s.UpdateCrawlFn(ctx, id, upd)
}

func (s *CrawlService) DeleteCrawl(ctx context.Context, id string) error {
	return s.DeleteCrawlFn(ctx, id)
}
