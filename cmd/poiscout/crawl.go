package main

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/crawl"
	"github.com/fwojciec/poiscout/fs"
	"github.com/rodaine/table"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	// Validate the seed before touching the database.
	if err := poiscout.ValidateSeedURL(c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	// Compile filters to URLFilter (validates regex patterns early)
	urlFilter, err := compileFilter(c.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	// Optionally seed the frontier from the site's sitemap.
	var extraSeeds []string
	if c.Sitemap {
		extraSeeds, err = deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: sitemap discovery failed: %s\n", poiscout.ErrorMessage(err))
		} else {
			fmt.Fprintf(deps.Stdout, "Seeding %d sitemap URLs\n", len(extraSeeds))
		}
	}

	record := &poiscout.Crawl{SeedURL: c.URL}
	if err := deps.Crawls.CreateCrawl(deps.Ctx, record); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %s (%d queued)\n", event.URL, event.Queued)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %s (%d visited, %d queued)\n", event.URL, event.Visited, event.Queued)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	driver := &crawl.Driver{
		Scrapers:   deps.Scrapers,
		Validator:  deps.Validator,
		Filter:     urlFilter,
		MaxVisits:  c.MaxVisits,
		ExtraSeeds: extraSeeds,
		Logger:     deps.Logger,
		Progress:   progress,
	}

	result, err := driver.Run(deps.Ctx, c.URL)
	if err != nil {
		failed := poiscout.CrawlStatusFailed
		if _, uerr := deps.Crawls.UpdateCrawl(deps.Ctx, record.ID, poiscout.CrawlUpdate{Status: &failed}); uerr != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(uerr))
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	if err := persistResult(deps, record.ID, result); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	done := poiscout.CrawlStatusDone
	updated, err := deps.Crawls.UpdateCrawl(deps.Ctx, record.ID, poiscout.CrawlUpdate{
		Status:  &done,
		Visited: &result.Visited,
		Failed:  &result.Failed,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nVisited %d pages (%d failed), found %d POIs, logged %d links\n",
		result.Visited, result.Failed, len(result.POIs), len(result.Links))
	if len(result.POIs) > 0 {
		fmt.Fprintln(deps.Stdout)
		printPOITable(deps, result.POIs)
	}
	fmt.Fprintf(deps.Stdout, "\nCrawl %s saved. Run 'poiscout pois %s' to browse the results.\n", record.ID, record.ID)

	if c.Report != "" {
		writer := fs.NewReportWriter(c.Report)
		if err := writer.WriteReport(deps.Ctx, updated, result.POIs); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Report written to %s\n", c.Report)
	}

	return nil
}

// persistResult stores the confirmed POIs and the link log of a finished
// crawl. POIs are inserted in name order so re-runs produce identical rows.
func persistResult(deps *Dependencies, crawlID string, result *crawl.Result) error {
	names := make([]string, 0, len(result.POIs))
	for name := range result.POIs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		poi := result.POIs[name]
		record := &poiscout.POIRecord{
			CrawlID:     crawlID,
			Name:        poi.Name,
			Description: poi.Description,
			Category:    poi.Category,
			Location:    poi.Location,
		}
		if err := deps.POIs.CreatePOI(deps.Ctx, record); err != nil {
			return err
		}
	}

	return deps.Links.CreateLinks(deps.Ctx, crawlID, result.Links)
}

// printPOITable renders the POI registry as a terminal table.
func printPOITable(deps *Dependencies, pois map[string]poiscout.POI) {
	names := make([]string, 0, len(pois))
	for name := range pois {
		names = append(names, name)
	}
	sort.Strings(names)

	tbl := table.New("Name", "Category", "Location").WithWriter(deps.Stdout)
	for _, name := range names {
		poi := pois[name]
		tbl.AddRow(poi.Name, poi.Category, poi.Location)
	}
	tbl.Print()
}

// compileFilter builds a URLFilter from include patterns. A nil return
// means no filtering.
func compileFilter(patterns []string) (*poiscout.URLFilter, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	filter := &poiscout.URLFilter{}
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	return filter, nil
}
