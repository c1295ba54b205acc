package poiscout

import "context"

// Asker provides natural language question answering over the POIs
// recorded by a crawl.
type Asker interface {
	// Ask answers a natural language question about a crawl's POIs.
	// Returns ENOTFOUND if the crawl has no recorded POIs.
	Ask(ctx context.Context, crawlID string, question string) (string, error)
}
