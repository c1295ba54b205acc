package poiscout

import "context"

// Frontier manages the priority-ordered queue of URLs awaiting a visit,
// together with the record of URLs already visited.
type Frontier interface {
	// Push adds a candidate to the frontier. Push never deduplicates:
	// the same URL may be queued more than once, possibly at different
	// priorities. Duplicates are resolved at pop time via Visited.
	Push(u ScoredURL)

	// Pop removes and returns the highest-priority candidate.
	// The bool result is false if the frontier is empty, which is the
	// crawl's terminal signal rather than an error.
	Pop() (ScoredURL, bool)

	// Len returns the number of queued candidates.
	Len() int

	// MarkVisited records that url has been fully processed.
	// Marking a URL twice is a no-op.
	MarkVisited(url string)

	// Visited returns true if url has been marked visited.
	Visited(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
