package poiscout

import "context"

// ReportWriter persists a human-readable report of a crawl run.
type ReportWriter interface {
	// WriteReport renders the crawl's confirmed POIs and writes them to
	// stable storage. Implementations must not leave partial reports
	// behind on failure.
	WriteReport(ctx context.Context, crawl *Crawl, pois map[string]POI) error
}
