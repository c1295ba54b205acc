package main

import (
	"fmt"

	"github.com/fwojciec/poiscout"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	crawl, err := deps.Crawls.FindCrawlByID(deps.Ctx, c.CrawlID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: crawl %q not found. Use 'poiscout list' to see stored crawls.\n", c.CrawlID)
		return err
	}

	answer, err := deps.Asker.Ask(deps.Ctx, crawl.ID, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
