package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/poiscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ poiscout.POIService = (*POIService)(nil)

// POIService implements poiscout.POIService using SQLite.
type POIService struct {
	db *DB
}

// NewPOIService creates a new POIService.
func NewPOIService(db *DB) *POIService {
	return &POIService{db: db}
}

// CreatePOI creates a new POI record.
func (s *POIService) CreatePOI(ctx context.Context, poi *poiscout.POIRecord) error {
	if err := poi.Validate(); err != nil {
		return err
	}

	poi.ID = uuid.New().String()
	poi.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pois (id, crawl_id, name, description, category, location, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, poi.ID, poi.CrawlID, poi.Name, poi.Description, poi.Category, poi.Location,
		formatRFC3339(poi.CreatedAt))

	return err
}

// FindPOIByID retrieves a POI record by ID.
func (s *POIService) FindPOIByID(ctx context.Context, id string) (*poiscout.POIRecord, error) {
	var poi poiscout.POIRecord
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, crawl_id, name, description, category, location, created_at
		FROM pois
		WHERE id = ?
	`, id).Scan(&poi.ID, &poi.CrawlID, &poi.Name, &poi.Description, &poi.Category,
		&poi.Location, &createdAt)

	if err == sql.ErrNoRows {
		return nil, poiscout.Errorf(poiscout.ENOTFOUND, "poi not found")
	}
	if err != nil {
		return nil, err
	}

	if poi.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &poi, nil
}

// FindPOIs retrieves POI records matching the filter, sorted by name.
func (s *POIService) FindPOIs(ctx context.Context, filter poiscout.POIFilter) ([]*poiscout.POIRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, crawl_id, name, description, category, location, created_at FROM pois WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.CrawlID != nil {
		query.WriteString(" AND crawl_id = ?")
		args = append(args, *filter.CrawlID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}

	query.WriteString(" ORDER BY name COLLATE NOCASE ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pois []*poiscout.POIRecord
	for rows.Next() {
		var poi poiscout.POIRecord
		var createdAt string

		if err := rows.Scan(&poi.ID, &poi.CrawlID, &poi.Name, &poi.Description, &poi.Category,
			&poi.Location, &createdAt); err != nil {
			return nil, err
		}

		if poi.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		pois = append(pois, &poi)
	}

	return pois, rows.Err()
}

// DeletePOIsByCrawl removes all POI records for a crawl.
func (s *POIService) DeletePOIsByCrawl(ctx context.Context, crawlID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM pois WHERE crawl_id = ?", crawlID)
	return err
}
