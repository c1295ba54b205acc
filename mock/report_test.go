package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where ReportWriter is expected
	var _ poiscout.ReportWriter = &mock.ReportWriter{}
}

func TestReportWriter_WriteReport(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteReportFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *poiscout.Crawl
		w := &mock.ReportWriter{
			WriteReportFn: func(_ context.Context, crawl *poiscout.Crawl, pois map[string]poiscout.POI) error {
				calledWith = crawl
				return nil
			},
		}

		crawl := &poiscout.Crawl{
			ID:      "crawl-1",
			SeedURL: "https://example.com",
		}

		err := w.WriteReport(context.Background(), crawl, nil)

		require.NoError(t, err)
		assert.Equal(t, crawl, calledWith)
	})
}
