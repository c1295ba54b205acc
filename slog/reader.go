package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/poiscout"
)

// Ensure LoggingPageReader implements poiscout.PageReader.
var _ poiscout.PageReader = (*LoggingPageReader)(nil)

// LoggingPageReader wraps a PageReader with logging.
type LoggingPageReader struct {
	next   poiscout.PageReader
	logger *slog.Logger
}

// NewLoggingPageReader creates a new LoggingPageReader.
func NewLoggingPageReader(next poiscout.PageReader, logger *slog.Logger) *LoggingPageReader {
	return &LoggingPageReader{next: next, logger: logger}
}

// ReadPage delegates to the wrapped reader and logs what it found.
func (r *LoggingPageReader) ReadPage(ctx context.Context, page *poiscout.PageContent) (findings *poiscout.PageFindings, err error) {
	defer func(begin time.Time) {
		pois, links := 0, 0
		if findings != nil {
			pois, links = len(findings.POIs), len(findings.Links)
		}
		r.logger.Info("page read",
			"url", page.URL,
			"pois", pois,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ReadPage(ctx, page)
}
