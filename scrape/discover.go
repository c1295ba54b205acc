package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/bloom"
)

// Discovery walk configuration.
const (
	// discoveryExpectedURLs is the expected number of URLs for Bloom filter sizing.
	discoveryExpectedURLs = 10000
	// discoveryFalsePositiveRate is the acceptable false positive rate for deduplication.
	discoveryFalsePositiveRate = 0.01
	// discoveryMaxURLs limits the number of URLs processed to prevent runaway walks.
	discoveryMaxURLs = 1000
	// discoveryConcurrency is the default worker count.
	discoveryConcurrency = 3
)

// Discoverer estimates the reachable size of a site before a crawl. It
// walks same-host links breadth-first without involving the reader
// oracle, deduplicating URLs with a Bloom filter, and returns every URL
// it fetched successfully.
type Discoverer struct {
	Fetcher poiscout.Fetcher
	Links   poiscout.LinkLister

	// RateLimiter, when set, throttles fetches per domain.
	RateLimiter poiscout.DomainLimiter

	// Concurrency is the worker count. Zero means 3: low enough not to
	// hammer a site that was never asked for a full crawl.
	Concurrency int

	// MaxURLs bounds the walk. Zero means 1000.
	MaxURLs int

	// RetryDelays configures fetch retry backoff. Nil uses DefaultRetryDelays.
	RetryDelays []time.Duration

	// Logger receives walk debug lines. Nil discards them.
	Logger *slog.Logger
}

// walkResult holds the outcome of fetching one URL during discovery.
type walkResult struct {
	url   string
	links []string
	err   error
}

// Discover walks the site rooted at seedURL and returns the URLs it
// reached, seed included. Fetch failures skip the page without failing
// the walk.
func (d *Discoverer) Discover(ctx context.Context, seedURL string, filter *poiscout.URLFilter) ([]string, error) {
	if err := poiscout.ValidateSeedURL(seedURL); err != nil {
		return nil, err
	}
	seed, _ := url.Parse(seedURL) // cannot fail after validation

	logger := d.logger()

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = discoveryConcurrency
	}
	maxURLs := d.MaxURLs
	if maxURLs <= 0 {
		maxURLs = discoveryMaxURLs
	}

	// The frontier is a FIFO queue deduplicated by a Bloom filter; a
	// false positive costs one skipped page, never a revisit.
	seen := bloom.NewFilter(discoveryExpectedURLs, discoveryFalsePositiveRate)
	var queue []string
	push := func(rawURL string) {
		if idx := strings.Index(rawURL, "#"); idx != -1 {
			rawURL = rawURL[:idx]
		}
		if seen.Test(rawURL) {
			return
		}
		seen.Add(rawURL)
		queue = append(queue, rawURL)
	}
	push(seedURL)

	workCh := make(chan string, concurrency)
	resultCh := make(chan walkResult)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range workCh {
				result := d.visit(ctx, u)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var urls []string
	handle := func(result walkResult) {
		for _, link := range result.links {
			u, err := url.Parse(link)
			if err != nil || u.Host != seed.Host {
				continue
			}
			if !filter.Match(link) {
				continue
			}
			push(link)
		}
		if result.err != nil {
			logger.Debug("discovery fetch failed", "url", result.url, "err", result.err)
			return
		}
		urls = append(urls, result.url)
	}

	// Coordinator: dispatch from the queue and fold in results until the
	// queue drains, the budget runs out, or ctx is canceled.
	dispatched := 0
	pending := 0
	var next *string
	if len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		next = &u
	}

coordinatorLoop:
	for {
		if next == nil && pending == 0 {
			break coordinatorLoop
		}
		if ctx.Err() != nil {
			break coordinatorLoop
		}

		if next != nil && dispatched < maxURLs {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *next:
				dispatched++
				pending++
				next = nil
			case result := <-resultCh:
				pending--
				handle(result)
			}
		} else {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case result, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				handle(result)
			}
		}

		if next == nil && dispatched < maxURLs && len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			next = &u
		}
	}

	// Signal workers to stop and drain remaining results.
	close(workCh)
	drainTimeout := time.After(5 * time.Second)
drainLoop:
	for {
		select {
		case result, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			pending--
			handle(result)
		case <-drainTimeout:
			break drainLoop
		}
	}

	logger.Info("discovery finished", "seed", seedURL, "urls", len(urls))
	return urls, nil
}

// visit fetches one URL and collects its outgoing links.
func (d *Discoverer) visit(ctx context.Context, rawURL string) walkResult {
	result := walkResult{url: rawURL}

	u, err := url.Parse(rawURL)
	if err != nil {
		result.err = err
		return result
	}
	if d.RateLimiter != nil {
		if err := d.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	html, err := FetchWithRetryDelays(ctx, rawURL, d.Fetcher.Fetch, d.logger(), d.delays())
	if err != nil {
		result.err = err
		return result
	}

	links, err := d.Links.ListLinks(html, rawURL)
	if err == nil {
		result.links = links
	}
	return result
}

func (d *Discoverer) delays() []time.Duration {
	if d.RetryDelays != nil {
		return d.RetryDelays
	}
	return DefaultRetryDelays()
}

func (d *Discoverer) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}
