package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/scrape"
)

// SelectFetcher picks the fetcher a crawl of seedURL should use.
//
// Mode "http" forces plain requests and "browser" forces headless Chrome.
// Mode "auto" probes the seed with both fetchers and compares the
// extracted content; when the browser is unavailable the probe degrades
// to plain HTTP with a warning rather than failing the crawl.
//
// makeRod starts the browser and is only called for the "browser" and
// "auto" modes, so plain-HTTP crawls never pay the startup cost.
func SelectFetcher(
	ctx context.Context,
	seedURL, mode string,
	httpFetcher poiscout.Fetcher,
	makeRod func() (poiscout.Fetcher, error),
	extractor poiscout.Extractor,
	stderr io.Writer,
) (poiscout.Fetcher, error) {
	switch mode {
	case "http":
		return httpFetcher, nil

	case "browser":
		rodFetcher, err := makeRod()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return rodFetcher, nil
	}

	// auto
	rodFetcher, err := makeRod()
	if err != nil {
		fmt.Fprintf(stderr, "warning: browser unavailable, falling back to plain HTTP: %v\n", err)
		return httpFetcher, nil
	}

	result, err := scrape.Probe(ctx, seedURL, httpFetcher, rodFetcher, extractor)
	if err != nil {
		// Both fetches failed; keep the browser so the crawl sees the
		// same errors the probe did.
		return rodFetcher, nil
	}
	if result.NeedsJS {
		return rodFetcher, nil
	}

	rodFetcher.Close()
	return httpFetcher, nil
}
