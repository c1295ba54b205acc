package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/scrape"
	"github.com/fwojciec/poiscout/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB       *sqlite.DB
	Crawls   poiscout.CrawlService
	POIs     poiscout.POIService
	Links    poiscout.LinkService
	Sitemaps poiscout.SitemapService
	Asker    poiscout.Asker

	// Crawl wiring.
	Scrapers  poiscout.ScraperFactory
	Validator poiscout.Validator

	// Discover wiring.
	Discoverer *scrape.Discoverer

	// Probe wiring.
	HTTPFetcher poiscout.Fetcher
	RodFetcher  poiscout.Fetcher
	Extractor   poiscout.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Crawl    CrawlCmd    `cmd:"" help:"Crawl a site from a seed URL and collect POIs"`
	List     ListCmd     `cmd:"" help:"List stored crawls"`
	Pois     PoisCmd     `cmd:"" help:"List POIs collected by a crawl"`
	Export   ExportCmd   `cmd:"" help:"Export a crawl's POIs as CSV, JSON or markdown"`
	Discover DiscoverCmd `cmd:"" help:"Preview the URLs a crawl of a site would reach"`
	Probe    ProbeCmd    `cmd:"" help:"Check whether a site needs JavaScript rendering"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored crawl and its POIs"`
	Ask      AskCmd      `cmd:"" help:"Ask a question about a crawl's POIs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL       string        `arg:"" help:"Seed URL to crawl from"`
	MaxVisits int           `short:"n" default:"50" help:"Maximum pages to visit (0 = unlimited)"`
	Render    string        `short:"r" default:"auto" enum:"auto,browser,http" help:"Fetch mode: auto probes the seed, browser forces headless Chrome, http forces plain requests"`
	Filter    []string      `short:"F" name:"filter" help:"Only queue URLs matching regex (repeatable)"`
	Sitemap   bool          `short:"s" help:"Seed the frontier from the site's sitemap"`
	Rate      float64       `default:"1.0" help:"Requests per second per domain"`
	Timeout   time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	Report    string        `help:"Write a markdown report to this path after the crawl"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// PoisCmd is the "pois" subcommand.
type PoisCmd struct {
	CrawlID  string `arg:"" help:"Crawl ID"`
	Category string `short:"c" help:"Only show POIs in this category"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	CrawlID string `arg:"" help:"Crawl ID"`
	Format  string `short:"f" default:"csv" enum:"csv,json,markdown" help:"Output format"`
	Out     string `short:"o" help:"Output file (default: stdout; markdown reports include frontmatter when written to a file)"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL         string        `arg:"" help:"Site URL to preview"`
	Filter      []string      `short:"F" name:"filter" help:"Only include URLs matching regex (repeatable)"`
	Sitemap     bool          `short:"s" help:"Read the site's sitemap instead of walking links"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent fetch limit"`
	MaxURLs     int           `default:"1000" help:"Stop after this many URLs"`
	Rate        float64       `default:"1.0" help:"Requests per second per domain"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL     string        `arg:"" help:"Page URL to probe"`
	Timeout time.Duration `short:"t" default:"30s" help:"Fetch timeout"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	CrawlID string `arg:"" help:"Crawl ID"`
	Force   bool   `help:"Confirm deletion"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	CrawlID  string `arg:"" help:"Crawl ID"`
	Question string `arg:"" help:"Question to ask about the crawl's POIs"`
}
