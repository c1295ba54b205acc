package main

import (
	"fmt"

	"github.com/fwojciec/poiscout"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	if err := poiscout.ValidateSeedURL(c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	filter, err := compileFilter(c.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var urls []string
	if c.Sitemap {
		urls, err = deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, filter)
	} else {
		urls, err = deps.Discoverer.Discover(deps.Ctx, c.URL, filter)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	fmt.Fprintf(deps.Stdout, "\nFound %d URLs\n", len(urls))
	return nil
}
