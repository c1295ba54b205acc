package mock

import (
	"context"

	"github.com/fwojciec/poiscout"
)

var _ poiscout.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of poiscout.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, crawl *poiscout.Crawl, pois map[string]poiscout.POI) error
}

func (w *ReportWriter) WriteReport(ctx context.Context, crawl *poiscout.Crawl, pois map[string]poiscout.POI) error {
	return w.WriteReportFn(ctx, crawl, pois)
}
