package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/gemini"
	"github.com/fwojciec/poiscout/goquery"
	"github.com/fwojciec/poiscout/htmltomarkdown"
	poihttp "github.com/fwojciec/poiscout/http"
	"github.com/fwojciec/poiscout/readability"
	"github.com/fwojciec/poiscout/rod"
	"github.com/fwojciec/poiscout/scrape"
	poislog "github.com/fwojciec/poiscout/slog"
	"github.com/fwojciec/poiscout/sqlite"
	"github.com/fwojciec/poiscout/trafilatura"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	CrawlService poiscout.CrawlService
	POIService   poiscout.POIService
	LinkService  poiscout.LinkService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("poiscout"),
		kong.Description("Discover Points of Interest by crawling a website"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'poiscout --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := kongCtx.Command()
	if idx := strings.IndexByte(command, ' '); idx != -1 {
		command = command[:idx]
	}

	// Structured logs go to stderr; stdout stays reserved for command
	// output. Default level hides the crawl engine's progress lines,
	// which the commands already print in human form.
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set POISCOUT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.CrawlService = sqlite.NewCrawlService(m.DB)
	m.POIService = sqlite.NewPOIService(m.DB)
	m.LinkService = sqlite.NewLinkService(m.DB)
	deps.DB = m.DB
	deps.Crawls = m.CrawlService
	deps.POIs = m.POIService
	deps.Links = m.LinkService
	deps.Sitemaps = poislog.NewLoggingSitemapService(poihttp.NewSitemapService(nil), deps.Logger)

	// Wire command-specific dependencies based on command
	switch command {
	case "crawl":
		client, err := geminiClient(ctx, stderr)
		if err != nil {
			return err
		}

		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		extractor := trafilatura.NewExtractor()
		httpFetcher := poihttp.NewFetcher(poihttp.WithTimeout(cli.Crawl.Timeout))
		makeRod := func() (poiscout.Fetcher, error) {
			return rod.NewFetcher(rod.WithFetchTimeout(cli.Crawl.Timeout))
		}
		fetcher, err := SelectFetcher(ctx, cli.Crawl.URL, cli.Crawl.Render, httpFetcher, makeRod, extractor, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		deps.Validator = poislog.NewLoggingValidator(gemini.NewValidator(client), deps.Logger)
		deps.Scrapers = &scrape.Factory{
			Fetcher:           poislog.NewLoggingFetcher(fetcher, deps.Logger),
			Extractor:         extractor,
			FallbackExtractor: readability.NewExtractor(),
			Converter:         htmltomarkdown.NewConverter(),
			Links:             goquery.NewLinkLister(),
			Reader:            poislog.NewLoggingPageReader(gemini.NewReader(client, tokenCounter), deps.Logger),
			RateLimiter:       scrape.NewDomainLimiter(cli.Crawl.Rate),
			Logger:            deps.Logger,
		}

	case "discover":
		fetcher := poihttp.NewFetcher(poihttp.WithTimeout(cli.Discover.Timeout))
		deps.Discoverer = &scrape.Discoverer{
			Fetcher:     poislog.NewLoggingFetcher(fetcher, deps.Logger),
			Links:       goquery.NewLinkLister(),
			RateLimiter: scrape.NewDomainLimiter(cli.Discover.Rate),
			Concurrency: cli.Discover.Concurrency,
			MaxURLs:     cli.Discover.MaxURLs,
			Logger:      deps.Logger,
		}

	case "probe":
		deps.HTTPFetcher = poihttp.NewFetcher(poihttp.WithTimeout(cli.Probe.Timeout))
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Probe.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer rodFetcher.Close()
		deps.RodFetcher = rodFetcher
		deps.Extractor = trafilatura.NewExtractor()

	case "ask":
		client, err := geminiClient(ctx, stderr)
		if err != nil {
			return err
		}
		deps.Asker = gemini.NewAsker(client, m.POIService)
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting when clipping oversized pages
// before they are sent to the reader.
const tokenizerModel = "gemini-2.5-flash"

// geminiClient builds the Gemini API client from GEMINI_API_KEY.
func geminiClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

func defaultDBPath() string {
	if path := os.Getenv("POISCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "poiscout.db"
	}
	dir := filepath.Join(home, ".poiscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "poiscout.db")
}
