package poiscout

import "context"

// PageReporter receives extraction results from a Scraper as callbacks.
// It is the only mutation surface a Scraper sees: POI candidates and link
// observations arrive here, never as return values.
type PageReporter interface {
	// Register submits a POI candidate for validation and registration.
	// The returned string describes the outcome (registered or rejected);
	// a rejected candidate is not an error. The error return signals a
	// validation oracle failure.
	Register(ctx context.Context, poi POI) (string, error)

	// ReportLink records that the page links to url with the given 0-1
	// relevance score. It returns an acknowledgement string and never
	// fails.
	ReportLink(url string, score float64) string
}

// Scraper visits URLs and reports findings through its PageReporter.
type Scraper interface {
	// Visit performs extraction for one URL, calling Register and
	// ReportLink on the reporter zero or more times as it works.
	// Any error means the page contributed nothing this round.
	Visit(ctx context.Context, url string) error
}

// ScraperFactory produces Scrapers bound to a PageReporter.
type ScraperFactory interface {
	NewScraper(reporter PageReporter) Scraper
}
