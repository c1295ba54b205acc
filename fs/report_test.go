package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Crawl Reports
// A finished crawl is summarized as a single markdown file, replaced
// atomically so readers never see a half-written report.

func testCrawl() *poiscout.Crawl {
	return &poiscout.Crawl{
		ID:        "crawl-1",
		SeedURL:   "https://www.example.com",
		Status:    poiscout.CrawlStatusDone,
		Visited:   12,
		Failed:    1,
		UpdatedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func testPOIs() map[string]poiscout.POI {
	return map[string]poiscout.POI{
		"Marina Beach": {
			Name:        "Marina Beach",
			Description: "A long urban beach along the Bay of Bengal.",
			Category:    "Beach",
			Location:    "Chennai",
		},
		"Fort St. George": {
			Name:        "Fort St. George",
			Description: "The first English fortress in India, now a museum.",
			Category:    "Historic Site",
			Location:    "Chennai",
		},
	}
}

func TestReportWriter_WritesReportFile(t *testing.T) {
	t.Parallel()

	// Given a writer targeting a file
	base := t.TempDir()
	path := filepath.Join(base, "report.md")
	writer := fs.NewReportWriter(path)

	// When I write a report
	err := writer.WriteReport(context.Background(), testCrawl(), testPOIs())

	// Then no error occurs and the file exists
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	// And it carries frontmatter plus the POI table
	text := string(content)
	assert.Contains(t, text, "seed: https://www.example.com")
	assert.Contains(t, text, "crawled: 2026-03-14")
	assert.Contains(t, text, "visited: 12")
	assert.Contains(t, text, "failed: 1")
	assert.Contains(t, text, "pois: 2")
	assert.Contains(t, text, "# Points of Interest")
	assert.Contains(t, text, "| Marina Beach | Beach | Chennai |")
	assert.Contains(t, text, "| Fort St. George | Historic Site | Chennai |")

	// And no temp file is left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be removed after write")
}

func TestReportWriter_ReplacesPreviousReport(t *testing.T) {
	t.Parallel()

	// Given an existing report
	base := t.TempDir()
	path := filepath.Join(base, "report.md")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))
	writer := fs.NewReportWriter(path)

	// When I write a new report
	err := writer.WriteReport(context.Background(), testCrawl(), testPOIs())

	// Then the old content is fully replaced
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale")
	assert.Contains(t, string(content), "Marina Beach")
}

func TestReportWriter_CreatesParentDirectories(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	path := filepath.Join(base, "reports", "chennai", "report.md")
	writer := fs.NewReportWriter(path)

	err := writer.WriteReport(context.Background(), testCrawl(), testPOIs())

	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestReportWriter_RejectsInvalidCrawl(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	path := filepath.Join(base, "report.md")
	writer := fs.NewReportWriter(path)

	err := writer.WriteReport(context.Background(), &poiscout.Crawl{}, nil)

	require.Error(t, err)
	assert.Equal(t, poiscout.EINVALID, poiscout.ErrorCode(err))

	// And nothing was written
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFormatReport_EmptyPOIs(t *testing.T) {
	t.Parallel()

	text := fs.FormatReport(testCrawl(), nil)

	assert.Contains(t, text, "pois: 0")
	assert.Contains(t, text, "No POIs were confirmed during this crawl.")
	assert.NotContains(t, text, "| Name |")
}

func TestFormatReport_TableIsSortedByName(t *testing.T) {
	t.Parallel()

	text := fs.FormatReport(testCrawl(), testPOIs())

	fortIdx := strings.Index(text, "Fort St. George")
	marinaIdx := strings.Index(text, "Marina Beach")
	require.NotEqual(t, -1, fortIdx)
	require.NotEqual(t, -1, marinaIdx)
	assert.Less(t, fortIdx, marinaIdx, "rows should be sorted by name")
}
