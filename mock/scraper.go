package mock

import (
	"context"

	"github.com/fwojciec/poiscout"
)

var _ poiscout.Scraper = (*Scraper)(nil)
var _ poiscout.ScraperFactory = (*ScraperFactory)(nil)
var _ poiscout.PageReporter = (*PageReporter)(nil)

// Scraper is a mock implementation of poiscout.Scraper.
type Scraper struct {
	VisitFn func(ctx context.Context, url string) error
}

func (s *Scraper) Visit(ctx context.Context, url string) error {
	return s.VisitFn(ctx, url)
}

// ScraperFactory is a mock implementation of poiscout.ScraperFactory.
type ScraperFactory struct {
	NewScraperFn func(reporter poiscout.PageReporter) poiscout.Scraper
}

func (f *ScraperFactory) NewScraper(reporter poiscout.PageReporter) poiscout.Scraper {
	return f.NewScraperFn(reporter)
}

// PageReporter is a mock implementation of poiscout.PageReporter.
type PageReporter struct {
	RegisterFn   func(ctx context.Context, poi poiscout.POI) (string, error)
	ReportLinkFn func(url string, score float64) string
}

func (r *PageReporter) Register(ctx context.Context, poi poiscout.POI) (string, error) {
	return r.RegisterFn(ctx, poi)
}

func (r *PageReporter) ReportLink(url string, score float64) string {
	return r.ReportLinkFn(url, score)
}
