package main

import (
	"fmt"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/scrape"
)

// Run executes the probe command.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	if err := poiscout.ValidateSeedURL(c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Probing %s...\n", c.URL)

	result, err := scrape.Probe(deps.Ctx, c.URL, deps.HTTPFetcher, deps.RodFetcher, deps.Extractor)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Extracted content: %d bytes over HTTP, %d bytes rendered\n",
		result.HTTPLen, result.RenderedLen)
	if result.NeedsJS {
		fmt.Fprintln(deps.Stdout, "Recommendation: crawl with --render browser (content needs JavaScript)")
	} else {
		fmt.Fprintln(deps.Stdout, "Recommendation: crawl with --render http (plain HTTP is enough)")
	}
	return nil
}
