package poiscout

import (
	"context"
	"net/url"
	"time"
)

// Crawl status values.
const (
	CrawlStatusRunning = "running"
	CrawlStatusDone    = "done"
	CrawlStatusFailed  = "failed"
)

// Crawl represents one crawl run against a seed URL.
type Crawl struct {
	ID        string    `json:"id"`
	SeedURL   string    `json:"seedUrl"`
	Status    string    `json:"status"`
	Visited   int       `json:"visited"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the crawl contains invalid fields.
func (c *Crawl) Validate() error {
	if c.SeedURL == "" {
		return Errorf(EINVALID, "crawl seed URL required")
	}
	return ValidateSeedURL(c.SeedURL)
}

// ValidateSeedURL returns an error unless rawURL is an absolute
// http or https URL with a host.
func ValidateSeedURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Errorf(EINVALID, "invalid seed URL %q", rawURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "seed URL must be absolute http(s), got %q", rawURL)
	}
	return nil
}

// CrawlService represents a service for managing crawl runs.
type CrawlService interface {
	// CreateCrawl creates a new crawl record.
	CreateCrawl(ctx context.Context, crawl *Crawl) error

	// FindCrawlByID retrieves a crawl by ID.
	// Returns ENOTFOUND if the crawl does not exist.
	FindCrawlByID(ctx context.Context, id string) (*Crawl, error)

	// FindCrawls retrieves crawls matching the filter.
	FindCrawls(ctx context.Context, filter CrawlFilter) ([]*Crawl, error)

	// UpdateCrawl updates an existing crawl.
	// Returns ENOTFOUND if the crawl does not exist.
	UpdateCrawl(ctx context.Context, id string, upd CrawlUpdate) (*Crawl, error)

	// DeleteCrawl permanently removes a crawl and all associated
	// POIs and links. Returns ENOTFOUND if the crawl does not exist.
	DeleteCrawl(ctx context.Context, id string) error
}

// CrawlFilter represents a filter for FindCrawls.
type CrawlFilter struct {
	ID      *string `json:"id"`
	SeedURL *string `json:"seedUrl"`
	Status  *string `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CrawlUpdate represents fields that can be updated on a crawl.
type CrawlUpdate struct {
	Status  *string `json:"status"`
	Visited *int    `json:"visited"`
	Failed  *int    `json:"failed"`
}
