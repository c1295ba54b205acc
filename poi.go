package poiscout

import (
	"context"
	"time"
)

// POI represents a Point of Interest: a specific place a visitor could go
// to, such as a monument, museum, park, temple or beach. Generic categories
// ("Explore the city") are not POIs.
type POI struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
}

// Validate returns an error if the POI contains invalid fields.
// Location and Category are optional.
func (p *POI) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "poi name required")
	}
	if p.Description == "" {
		return Errorf(EINVALID, "poi description required")
	}
	return nil
}

// Verdict is the outcome of judging a POI candidate.
type Verdict struct {
	// IsValid reports whether the candidate qualifies as a real POI.
	IsValid bool

	// Name and Description echo the candidate that was judged.
	Name        string
	Description string

	// RawResponse is the validator's verbatim answer, kept for diagnostics.
	RawResponse string
}

// Validator judges whether a POI candidate is a real Point of Interest.
type Validator interface {
	// Validate submits the candidate to the validation oracle.
	// A negative verdict is not an error; the error return signals an
	// oracle failure and is never absorbed at this layer.
	Validate(ctx context.Context, poi POI) (*Verdict, error)
}

// POIRecord represents a confirmed POI persisted from a crawl run.
type POIRecord struct {
	ID          string    `json:"id"`
	CrawlID     string    `json:"crawlId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (p *POIRecord) Validate() error {
	if p.CrawlID == "" {
		return Errorf(EINVALID, "poi crawl ID required")
	}
	if p.Name == "" {
		return Errorf(EINVALID, "poi name required")
	}
	return nil
}

// POIService represents a service for managing persisted POIs.
type POIService interface {
	// CreatePOI creates a new POI record.
	CreatePOI(ctx context.Context, poi *POIRecord) error

	// FindPOIByID retrieves a POI record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindPOIByID(ctx context.Context, id string) (*POIRecord, error)

	// FindPOIs retrieves POI records matching the filter.
	FindPOIs(ctx context.Context, filter POIFilter) ([]*POIRecord, error)

	// DeletePOIsByCrawl removes all POI records for a crawl.
	DeletePOIsByCrawl(ctx context.Context, crawlID string) error
}

// POIFilter represents a filter for FindPOIs.
type POIFilter struct {
	ID       *string `json:"id"`
	CrawlID  *string `json:"crawlId"`
	Name     *string `json:"name"`
	Category *string `json:"category"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
