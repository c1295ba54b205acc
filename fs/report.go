// Package fs writes crawl reports to the local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/poiscout"
)

// Ensure ReportWriter implements poiscout.ReportWriter at compile time.
var _ poiscout.ReportWriter = (*ReportWriter)(nil)

// ReportWriter writes a markdown report of a crawl run to a single file.
// The report is written to a temporary file first and moved into place on
// success, so readers never observe a partial report.
type ReportWriter struct {
	path string
}

// NewReportWriter creates a ReportWriter targeting the given file path.
// Parent directories are created as needed.
func NewReportWriter(path string) *ReportWriter {
	return &ReportWriter{path: path}
}

// WriteReport renders the report and atomically replaces any previous one.
func (w *ReportWriter) WriteReport(ctx context.Context, crawl *poiscout.Crawl, pois map[string]poiscout.POI) error {
	if err := crawl.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	tmp := w.path + ".tmp"
	content := FormatReport(crawl, pois)
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return err
	}

	if err := os.Rename(tmp, w.path); err != nil {
		os.Remove(tmp)
		return err
	}

	return nil
}

// FormatReport formats a crawl report with YAML frontmatter followed by a
// markdown table of the confirmed POIs.
func FormatReport(crawl *poiscout.Crawl, pois map[string]poiscout.POI) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("seed: ")
	b.WriteString(crawl.SeedURL)
	b.WriteString("\ncrawled: ")
	b.WriteString(crawl.UpdatedAt.Format("2006-01-02"))
	b.WriteString("\nvisited: ")
	b.WriteString(strconv.Itoa(crawl.Visited))
	b.WriteString("\nfailed: ")
	b.WriteString(strconv.Itoa(crawl.Failed))
	b.WriteString("\npois: ")
	b.WriteString(strconv.Itoa(len(pois)))
	b.WriteString("\n---\n\n")
	b.WriteString("# Points of Interest\n\n")

	table := poiscout.FormatPOIs(pois)
	if table == "" {
		b.WriteString("No POIs were confirmed during this crawl.\n")
		return b.String()
	}
	b.WriteString(table)
	return b.String()
}
