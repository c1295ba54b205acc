package main

import (
	"fmt"

	"github.com/fwojciec/poiscout"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	crawls, err := deps.Crawls.FindCrawls(deps.Ctx, poiscout.CrawlFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	if len(crawls) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawls found. Use 'poiscout crawl' to run one.")
		return nil
	}

	for _, cr := range crawls {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  visited=%d failed=%d\n",
			cr.ID, cr.CreatedAt.Format("2006-01-02"), cr.Status, cr.SeedURL, cr.Visited, cr.Failed)
	}

	return nil
}
