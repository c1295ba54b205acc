package main

import (
	"fmt"

	"github.com/fwojciec/poiscout"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return poiscout.Errorf(poiscout.EINVALID, "use --force to confirm deletion")
	}

	crawl, err := deps.Crawls.FindCrawlByID(deps.Ctx, c.CrawlID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: crawl %q not found. Use 'poiscout list' to see stored crawls.\n", c.CrawlID)
		return err
	}

	if err := deps.Crawls.DeleteCrawl(deps.Ctx, crawl.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted crawl %s (%s)\n", crawl.ID, crawl.SeedURL)
	return nil
}
