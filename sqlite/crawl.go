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
var _ poiscout.CrawlService = (*CrawlService)(nil)

// CrawlService implements poiscout.CrawlService using SQLite.
type CrawlService struct {
	db *DB
}

// NewCrawlService creates a new CrawlService.
func NewCrawlService(db *DB) *CrawlService {
	return &CrawlService{db: db}
}

// CreateCrawl creates a new crawl record.
func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *poiscout.Crawl) error {
	if err := crawl.Validate(); err != nil {
		return err
	}

	crawl.ID = uuid.New().String()
	if crawl.Status == "" {
		crawl.Status = poiscout.CrawlStatusRunning
	}
	now := time.Now().UTC()
	crawl.CreatedAt = now
	crawl.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawls (id, seed_url, status, visited, failed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, crawl.ID, crawl.SeedURL, crawl.Status, crawl.Visited, crawl.Failed,
		formatRFC3339(crawl.CreatedAt), formatRFC3339(crawl.UpdatedAt))

	return err
}

// FindCrawlByID retrieves a crawl by ID.
func (s *CrawlService) FindCrawlByID(ctx context.Context, id string) (*poiscout.Crawl, error) {
	var crawl poiscout.Crawl
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, seed_url, status, visited, failed, created_at, updated_at
		FROM crawls
		WHERE id = ?
	`, id).Scan(&crawl.ID, &crawl.SeedURL, &crawl.Status, &crawl.Visited, &crawl.Failed,
		&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, poiscout.Errorf(poiscout.ENOTFOUND, "crawl not found")
	}
	if err != nil {
		return nil, err
	}

	if crawl.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if crawl.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &crawl, nil
}

// FindCrawls retrieves crawls matching the filter.
func (s *CrawlService) FindCrawls(ctx context.Context, filter poiscout.CrawlFilter) ([]*poiscout.Crawl, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, status, visited, failed, created_at, updated_at FROM crawls WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crawls []*poiscout.Crawl
	for rows.Next() {
		var crawl poiscout.Crawl
		var createdAt, updatedAt string

		if err := rows.Scan(&crawl.ID, &crawl.SeedURL, &crawl.Status, &crawl.Visited, &crawl.Failed,
			&createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if crawl.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if crawl.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		crawls = append(crawls, &crawl)
	}

	return crawls, rows.Err()
}

// UpdateCrawl updates an existing crawl.
func (s *CrawlService) UpdateCrawl(ctx context.Context, id string, upd poiscout.CrawlUpdate) (*poiscout.Crawl, error) {
	// First check if crawl exists
	crawl, err := s.FindCrawlByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if upd.Status != nil {
		crawl.Status = *upd.Status
	}
	if upd.Visited != nil {
		crawl.Visited = *upd.Visited
	}
	if upd.Failed != nil {
		crawl.Failed = *upd.Failed
	}

	// Validate before persisting
	if err := crawl.Validate(); err != nil {
		return nil, err
	}

	crawl.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE crawls
		SET status = ?, visited = ?, failed = ?, updated_at = ?
		WHERE id = ?
	`, crawl.Status, crawl.Visited, crawl.Failed,
		formatRFC3339(crawl.UpdatedAt), id)

	if err != nil {
		return nil, err
	}

	return crawl, nil
}

// DeleteCrawl permanently removes a crawl. Associated POIs and links are
// removed by the foreign key cascade.
func (s *CrawlService) DeleteCrawl(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM crawls WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return poiscout.Errorf(poiscout.ENOTFOUND, "crawl not found")
	}

	return nil
}
