package poiscout

import (
	"context"
	"time"
)

// ScoredURL represents a crawl candidate with its frontier priority.
// Higher priority URLs are visited first.
type ScoredURL struct {
	URL      string
	Priority float64
}

// LinkReport represents a single link observation made while scraping a
// page: the link's absolute URL and the 0-1 relevance score the scraper
// assigned to it. Two reports are the same observation only when both URL
// and score match.
type LinkReport struct {
	URL   string
	Score float64
}

// LinkRecord represents a link report persisted from a crawl run.
type LinkRecord struct {
	ID        string    `json:"id"`
	CrawlID   string    `json:"crawlId"`
	URL       string    `json:"url"`
	Score     float64   `json:"score"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// LinkService represents a service for managing the persisted link log.
type LinkService interface {
	// CreateLinks persists the link log of a crawl in report order.
	CreateLinks(ctx context.Context, crawlID string, links []LinkReport) error

	// FindLinks retrieves link records matching the filter,
	// ordered by position.
	FindLinks(ctx context.Context, filter LinkFilter) ([]*LinkRecord, error)
}

// LinkFilter represents a filter for FindLinks.
type LinkFilter struct {
	CrawlID  *string  `json:"crawlId"`
	URL      *string  `json:"url"`
	MinScore *float64 `json:"minScore"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
