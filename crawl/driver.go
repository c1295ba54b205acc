// Package crawl implements the POI crawl engine: a priority frontier of
// URLs, relevance and depth scoring, a validated POI registry, and the
// sequential driver loop that ties them to an external scraper.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"

	"github.com/fwojciec/poiscout"
)

// seedPriority is the frontier priority of the seed URL: always visit first.
const seedPriority = 1.0

// Driver runs one crawl from a seed URL. It owns all crawl state (frontier,
// visited set, link log, POI registry) and mutates it from a single
// sequential loop; the scraper and validator oracles are the only external
// calls. A Driver is single-use: Run may be called once.
type Driver struct {
	// Scrapers produces the scraper bound to this crawl's registry.
	Scrapers poiscout.ScraperFactory

	// Validator gates POI candidates before registration.
	Validator poiscout.Validator

	// Filter, when set, is an extra admission constraint: links that do
	// not match are never queued.
	Filter *poiscout.URLFilter

	// MaxVisits bounds the number of successfully processed pages.
	// Zero means no bound beyond frontier exhaustion.
	MaxVisits int

	// ExtraSeeds are queued alongside the seed at their depth-based
	// priority, typically sourced from a sitemap. Cross-host entries are
	// ignored.
	ExtraSeeds []string

	// Logger receives crawl progress lines. Nil discards them.
	Logger *slog.Logger

	// Progress, if set, receives an event per processed page.
	Progress ProgressFunc

	started atomic.Bool
}

// Result holds the outcome of a crawl.
type Result struct {
	// POIs is the confirmed registry, keyed by POI name.
	POIs map[string]poiscout.POI

	// Links is the append-only log of every link report made during the
	// crawl, including reports from failed pages.
	Links []poiscout.LinkReport

	Visited int
	Failed  int
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type    ProgressType
	URL     string
	Visited int
	Queued  int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Run crawls from seedURL until the frontier is empty, the visit budget is
// spent, or ctx is canceled. It returns the accumulated registry and crawl
// stats; per-page failures are absorbed into the stats, so the only error
// returns are an invalid seed or a re-entrant call (ECONFLICT).
func (d *Driver) Run(ctx context.Context, seedURL string) (*Result, error) {
	if !d.started.CompareAndSwap(false, true) {
		return nil, poiscout.Errorf(poiscout.ECONFLICT, "crawl already started")
	}
	if err := poiscout.ValidateSeedURL(seedURL); err != nil {
		return nil, err
	}
	seed, _ := url.Parse(seedURL) // cannot fail after validation

	logger := d.logger()
	registry := NewRegistry(d.Validator)
	scraper := d.Scrapers.NewScraper(registry)
	frontier := NewFrontier()

	frontier.Push(poiscout.ScoredURL{URL: seedURL, Priority: seedPriority})
	d.seedExtras(frontier, seed.Host, logger)

	result := &Result{}
	d.emit(ProgressEvent{Type: ProgressStarted, URL: seedURL, Queued: frontier.Len()})
	logger.Info("crawl started", "seed", seedURL, "queued", frontier.Len())

	for {
		if ctx.Err() != nil {
			logger.Info("crawl canceled", "visited", result.Visited)
			break
		}
		if d.MaxVisits > 0 && result.Visited >= d.MaxVisits {
			logger.Info("visit budget exhausted", "visited", result.Visited)
			break
		}

		current, ok := frontier.Pop()
		if !ok {
			break
		}

		// Duplicate frontier entries are resolved here, not at push time.
		if frontier.Visited(current.URL) {
			continue
		}

		logger.Debug("visiting", "url", current.URL, "priority", current.Priority, "queued", frontier.Len())

		if err := scraper.Visit(ctx, current.URL); err != nil {
			d.abandon(registry, result, current.URL, err, frontier.Len())
			continue
		}

		// Admit this page's first-seen reports before marking the page
		// visited; a scoring error abandons the page with nothing queued
		// and the URL still retryable.
		queued, err := d.admit(registry.NewLinks(), seed.Host, frontier)
		if err != nil {
			d.abandon(registry, result, current.URL, err, frontier.Len())
			continue
		}
		for _, u := range queued {
			frontier.Push(u)
		}
		frontier.MarkVisited(current.URL)
		registry.CommitNewLinks()
		result.Visited++

		logger.Info("page visited", "url", current.URL, "new_links", len(queued), "queued", frontier.Len())
		d.emit(ProgressEvent{Type: ProgressCompleted, URL: current.URL, Visited: result.Visited, Queued: frontier.Len()})
	}

	result.POIs = registry.POIs()
	result.Links = registry.Links()

	d.emit(ProgressEvent{Type: ProgressFinished, Visited: result.Visited})
	logger.Info("crawl finished", "visited", result.Visited, "failed", result.Failed, "pois", len(result.POIs))

	return result, nil
}

// admit applies the admission rules to first-seen link reports: relevance at
// least MinLinkScore, same host as the seed, not yet visited, and passing
// the optional filter. Survivors come back scored for the frontier. Any URL
// error abandons the whole batch.
func (d *Driver) admit(reports []poiscout.LinkReport, seedHost string, frontier *Frontier) ([]poiscout.ScoredURL, error) {
	var out []poiscout.ScoredURL
	for _, report := range reports {
		if report.Score < MinLinkScore {
			continue
		}
		u, err := url.Parse(report.URL)
		if err != nil {
			return nil, poiscout.Errorf(poiscout.EINVALID, "invalid link URL %q", report.URL)
		}
		if u.Host != seedHost {
			continue
		}
		if frontier.Visited(report.URL) {
			continue
		}
		if !d.Filter.Match(report.URL) {
			continue
		}
		priority, err := Score(report.Score, report.URL)
		if err != nil {
			return nil, err
		}
		out = append(out, poiscout.ScoredURL{URL: report.URL, Priority: priority})
	}
	return out, nil
}

// abandon records a failed page: its pending link reports are dropped so
// they can requeue later, and the URL stays unvisited.
func (d *Driver) abandon(registry *Registry, result *Result, url string, err error, queued int) {
	registry.DiscardNewLinks()
	result.Failed++
	d.logger().Info("page failed", "url", url, "err", err)
	d.emit(ProgressEvent{Type: ProgressFailed, URL: url, Visited: result.Visited, Queued: queued, Error: err})
}

// seedExtras queues sitemap-sourced URLs at their depth-based priority.
func (d *Driver) seedExtras(frontier *Frontier, seedHost string, logger *slog.Logger) {
	for _, extra := range d.ExtraSeeds {
		u, err := url.Parse(extra)
		if err != nil || u.Host != seedHost {
			logger.Debug("extra seed skipped", "url", extra)
			continue
		}
		if !d.Filter.Match(extra) {
			continue
		}
		depth, err := DepthScore(extra)
		if err != nil {
			continue
		}
		frontier.Push(poiscout.ScoredURL{URL: extra, Priority: depth})
	}
}

func (d *Driver) emit(event ProgressEvent) {
	if d.Progress != nil {
		d.Progress(event)
	}
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}
