package crawl

import (
	"context"
	"fmt"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fwojciec/poiscout"
)

// Compile-time interface verification.
var _ poiscout.PageReporter = (*Registry)(nil)

// Registry accumulates the results of a crawl: confirmed POIs keyed by name
// and an append-only log of every link report. It is the PageReporter handed
// to scrapers.
//
// Link reports are deduplicated by their (url, score) pair: the first report
// of a pair also lands in a pending batch for the crawl driver, which drains
// it with NewLinks/CommitNewLinks after a page succeeds or drops it with
// DiscardNewLinks after a page fails. Discarding forgets the pairs, so a
// page retried later can report them again.
// It is safe for concurrent use by multiple goroutines.
type Registry struct {
	validator poiscout.Validator

	mu      sync.Mutex
	pois    map[string]poiscout.POI
	log     []poiscout.LinkReport
	seen    mapset.Set[poiscout.LinkReport]
	pending []poiscout.LinkReport
}

// NewRegistry creates a Registry that gates POI admission through validator.
func NewRegistry(validator poiscout.Validator) *Registry {
	return &Registry{
		validator: validator,
		pois:      make(map[string]poiscout.POI),
		seen:      mapset.NewThreadUnsafeSet[poiscout.LinkReport](),
	}
}

// Register submits a POI candidate to the validator and, on a positive
// verdict, upserts it by name. A negative verdict returns a rejection
// message, not an error; a validator failure propagates unwrapped.
func (r *Registry) Register(ctx context.Context, poi poiscout.POI) (string, error) {
	if err := poi.Validate(); err != nil {
		return "", err
	}

	// Oracle call stays outside the lock; it may take arbitrary time.
	verdict, err := r.validator.Validate(ctx, poi)
	if err != nil {
		return "", err
	}

	if !verdict.IsValid {
		return fmt.Sprintf("POI validation failed for: %s, %s", poi.Name, poi.Description), nil
	}

	r.mu.Lock()
	r.pois[poi.Name] = poi
	r.mu.Unlock()

	return fmt.Sprintf("POI registered: %s, Category: %s, Location: %s", poi.Name, poi.Category, poi.Location), nil
}

// ReportLink appends the (url, score) observation to the link log and
// returns an acknowledgement. The first report of a pair is also queued for
// the driver; repeats only grow the log.
func (r *Registry) ReportLink(url string, score float64) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := poiscout.LinkReport{URL: url, Score: score}
	r.log = append(r.log, report)
	if r.seen.Add(report) {
		r.pending = append(r.pending, report)
	}

	return fmt.Sprintf("Link registered: %s, AI score: %v", url, score)
}

// NewLinks returns a copy of the pending batch of first-seen link reports,
// in report order, without draining it.
func (r *Registry) NewLinks() []poiscout.LinkReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]poiscout.LinkReport, len(r.pending))
	copy(out, r.pending)
	return out
}

// CommitNewLinks drains the pending batch, keeping its pairs recorded so
// later repeats stay deduplicated. Called after a page's links have been
// admitted to the frontier.
func (r *Registry) CommitNewLinks() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = nil
}

// DiscardNewLinks drains the pending batch and forgets its pairs, so the
// same reports can queue again if the page is retried. The link log keeps
// the discarded entries. Called after a page fails.
func (r *Registry) DiscardNewLinks() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, report := range r.pending {
		r.seen.Remove(report)
	}
	r.pending = nil
}

// POIs returns a copy of the confirmed POIs keyed by name.
func (r *Registry) POIs() map[string]poiscout.POI {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]poiscout.POI, len(r.pois))
	for name, poi := range r.pois {
		out[name] = poi
	}
	return out
}

// Links returns a copy of the full link log in report order.
func (r *Registry) Links() []poiscout.LinkReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]poiscout.LinkReport, len(r.log))
	copy(out, r.log)
	return out
}
