package main

import (
	"fmt"

	"github.com/fwojciec/poiscout"
	"github.com/rodaine/table"
)

// Run executes the pois command.
func (c *PoisCmd) Run(deps *Dependencies) error {
	crawl, err := deps.Crawls.FindCrawlByID(deps.Ctx, c.CrawlID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: crawl %q not found. Use 'poiscout list' to see stored crawls.\n", c.CrawlID)
		return err
	}

	filter := poiscout.POIFilter{CrawlID: &crawl.ID}
	if c.Category != "" {
		filter.Category = &c.Category
	}

	pois, err := deps.POIs.FindPOIs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	if len(pois) == 0 {
		fmt.Fprintf(deps.Stdout, "No POIs recorded for crawl %s (%s)\n", crawl.ID, crawl.SeedURL)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "POIs from %s (%d total):\n\n", crawl.SeedURL, len(pois))

	tbl := table.New("Name", "Category", "Location", "Description").WithWriter(deps.Stdout)
	for _, poi := range pois {
		tbl.AddRow(poi.Name, poi.Category, poi.Location, poi.Description)
	}
	tbl.Print()

	return nil
}
