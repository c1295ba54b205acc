package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/poiscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ poiscout.LinkService = (*LinkService)(nil)

// LinkService implements poiscout.LinkService using SQLite.
type LinkService struct {
	db *DB
}

// NewLinkService creates a new LinkService.
func NewLinkService(db *DB) *LinkService {
	return &LinkService{db: db}
}

// CreateLinks persists the link log of a crawl in report order.
// Position records each link's place in the log, so the original order
// survives the round trip.
func (s *LinkService) CreateLinks(ctx context.Context, crawlID string, links []poiscout.LinkReport) error {
	if crawlID == "" {
		return poiscout.Errorf(poiscout.EINVALID, "link crawl ID required")
	}

	now := formatRFC3339(time.Now().UTC())
	for i, link := range links {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO links (id, crawl_id, url, score, position, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), crawlID, link.URL, link.Score, i, now)
		if err != nil {
			return err
		}
	}

	return nil
}

// FindLinks retrieves link records matching the filter, ordered by position.
func (s *LinkService) FindLinks(ctx context.Context, filter poiscout.LinkFilter) ([]*poiscout.LinkRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, crawl_id, url, score, position, created_at FROM links WHERE 1=1")

	if filter.CrawlID != nil {
		query.WriteString(" AND crawl_id = ?")
		args = append(args, *filter.CrawlID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.MinScore != nil {
		query.WriteString(" AND score >= ?")
		args = append(args, *filter.MinScore)
	}

	query.WriteString(" ORDER BY position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*poiscout.LinkRecord
	for rows.Next() {
		var link poiscout.LinkRecord
		var createdAt string

		if err := rows.Scan(&link.ID, &link.CrawlID, &link.URL, &link.Score,
			&link.Position, &createdAt); err != nil {
			return nil, err
		}

		if link.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		links = append(links, &link)
	}

	return links, rows.Err()
}
