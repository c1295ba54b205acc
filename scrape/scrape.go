// Package scrape turns web pages into POI findings. It assembles the
// fetch, extract, convert and read steps behind the crawl engine's
// Scraper interface, reporting findings back through the per-crawl
// registry, and provides site discovery and probing used before a crawl.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/poiscout"
)

var _ poiscout.ScraperFactory = (*Factory)(nil)

// Factory builds scrapers bound to a crawl's reporter. Each scraper runs
// the full page pipeline: rate limit, fetch with retry, extract the main
// content, convert to markdown, collect candidate links, and hand the
// page to the reader oracle for POI and link findings.
type Factory struct {
	Fetcher   poiscout.Fetcher
	Extractor poiscout.Extractor
	Converter poiscout.Converter
	Links     poiscout.LinkLister
	Reader    poiscout.PageReader

	// FallbackExtractor, when set, takes over pages the primary
	// extractor fails on or finds no content in.
	FallbackExtractor poiscout.Extractor

	// RateLimiter, when set, throttles fetches per domain.
	RateLimiter poiscout.DomainLimiter

	// RetryDelays configures fetch retry backoff. Nil uses DefaultRetryDelays.
	RetryDelays []time.Duration

	// Logger receives pipeline debug lines. Nil discards them.
	Logger *slog.Logger
}

// NewScraper returns a scraper that reports findings to reporter. The
// scraper deduplicates page content within its lifetime, so mirror pages
// are visited once and never re-read.
func (f *Factory) NewScraper(reporter poiscout.PageReporter) poiscout.Scraper {
	return &scraper{
		factory:  f,
		reporter: reporter,
		seen:     make(map[uint64]struct{}),
	}
}

type scraper struct {
	factory  *Factory
	reporter poiscout.PageReporter

	mu   sync.Mutex
	seen map[uint64]struct{} // xxhash of converted markdown
}

func (s *scraper) Visit(ctx context.Context, rawURL string) error {
	f := s.factory
	logger := f.logger()

	u, err := url.Parse(rawURL)
	if err != nil {
		return poiscout.Errorf(poiscout.EINVALID, "invalid page URL %q", rawURL)
	}

	if f.RateLimiter != nil {
		if err := f.RateLimiter.Wait(ctx, u.Host); err != nil {
			return err
		}
	}

	html, err := FetchWithRetryDelays(ctx, rawURL, f.Fetcher.Fetch, logger, f.delays())
	if err != nil {
		return err
	}

	extracted, err := f.extract(html)
	if err != nil {
		return err
	}

	markdown, err := f.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return err
	}

	// Mirror pages reach here under a new URL but hash to known content;
	// skipping them keeps the page marked visited without paying the
	// reader oracle twice.
	if s.duplicate(markdown) {
		logger.Debug("duplicate content skipped", "url", rawURL)
		return nil
	}

	links, err := f.Links.ListLinks(html, rawURL)
	if err != nil {
		return err
	}

	page := &poiscout.PageContent{
		URL:      rawURL,
		Title:    extracted.Title,
		Markdown: markdown,
		Links:    links,
	}
	findings, err := f.Reader.ReadPage(ctx, page)
	if err != nil {
		return err
	}

	for _, link := range findings.Links {
		ack := s.reporter.ReportLink(link.URL, link.Score)
		logger.Debug("link reported", "ack", ack)
	}
	for _, poi := range findings.POIs {
		ack, err := s.reporter.Register(ctx, poi)
		if err != nil {
			return err
		}
		logger.Debug("poi reported", "ack", ack)
	}

	return nil
}

// extract runs the primary extractor and falls back when it errors or
// comes back empty. Listing pages built entirely from cards and tiles
// sometimes defeat the primary heuristics.
func (f *Factory) extract(html string) (*poiscout.ExtractResult, error) {
	extracted, err := f.Extractor.Extract(html)
	if f.FallbackExtractor == nil {
		return extracted, err
	}
	if err != nil || extracted.ContentHTML == "" {
		return f.FallbackExtractor.Extract(html)
	}
	return extracted, nil
}

// duplicate records the content hash and reports whether it was already
// present.
func (s *scraper) duplicate(markdown string) bool {
	h := xxhash.Sum64String(markdown)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[h]; ok {
		return true
	}
	s.seen[h] = struct{}{}
	return false
}

func (f *Factory) delays() []time.Duration {
	if f.RetryDelays != nil {
		return f.RetryDelays
	}
	return DefaultRetryDelays()
}

func (f *Factory) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.New(slog.DiscardHandler)
}
