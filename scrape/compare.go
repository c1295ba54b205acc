package scrape

import (
	"context"

	"github.com/fwojciec/poiscout"
	"golang.org/x/sync/errgroup"
)

// ContentDiffers compares content extracted from plain-HTTP HTML vs
// browser-rendered HTML. Returns true if the rendered content is
// significantly longer (>50%), suggesting JavaScript rendering adds
// meaningful content. Also returns true on extraction errors (assumes JS
// needed).
func ContentDiffers(httpHTML, renderedHTML string, extractor poiscout.Extractor) bool {
	httpResult, err := extractor.Extract(httpHTML)
	if err != nil {
		return true // Assume JS needed on error
	}

	renderedResult, err := extractor.Extract(renderedHTML)
	if err != nil {
		return true // Assume JS needed on error
	}

	httpLen := len(httpResult.ContentHTML)
	renderedLen := len(renderedResult.ContentHTML)

	// Handle empty HTTP content
	if httpLen == 0 && renderedLen > 0 {
		return true
	}

	// Check if rendered content is >50% longer
	threshold := float64(httpLen) * 1.5
	return float64(renderedLen) > threshold
}

// ProbeResult reports what a probe learned about a site.
type ProbeResult struct {
	// NeedsJS is true when the site should be crawled with a headless
	// browser rather than plain HTTP.
	NeedsJS bool

	// HTTPLen and RenderedLen are the extracted content sizes from each
	// fetch, zero when that fetch failed.
	HTTPLen     int
	RenderedLen int
}

// Probe fetches a URL both with plain HTTP and with a headless browser,
// concurrently, and compares the extracted content to decide which
// fetcher a crawl of the site should use. A failed HTTP fetch recommends
// the browser; a failed browser fetch falls back to HTTP.
func Probe(ctx context.Context, url string, httpFetcher, renderedFetcher poiscout.Fetcher, extractor poiscout.Extractor) (*ProbeResult, error) {
	var httpHTML, renderedHTML string
	var httpErr, renderedErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		httpHTML, httpErr = httpFetcher.Fetch(gctx, url)
		return nil
	})
	g.Go(func() error {
		renderedHTML, renderedErr = renderedFetcher.Fetch(gctx, url)
		return nil
	})
	_ = g.Wait()

	if httpErr != nil && renderedErr != nil {
		return nil, poiscout.Errorf(poiscout.EUNAVAILABLE, "probe failed: %s", url)
	}
	if httpErr != nil {
		result := &ProbeResult{NeedsJS: true}
		if extracted, err := extractor.Extract(renderedHTML); err == nil {
			result.RenderedLen = len(extracted.ContentHTML)
		}
		return result, nil
	}
	if renderedErr != nil {
		result := &ProbeResult{}
		if extracted, err := extractor.Extract(httpHTML); err == nil {
			result.HTTPLen = len(extracted.ContentHTML)
		}
		return result, nil
	}

	result := &ProbeResult{
		NeedsJS: ContentDiffers(httpHTML, renderedHTML, extractor),
	}
	if extracted, err := extractor.Extract(httpHTML); err == nil {
		result.HTTPLen = len(extracted.ContentHTML)
	}
	if extracted, err := extractor.Extract(renderedHTML); err == nil {
		result.RenderedLen = len(extracted.ContentHTML)
	}
	return result, nil
}
