package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/crawl"
	"github.com/fwojciec/poiscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// acceptAll returns a validator that confirms every candidate.
func acceptAll() *mock.Validator {
	return &mock.Validator{
		ValidateFn: func(ctx context.Context, poi poiscout.POI) (*poiscout.Verdict, error) {
			return &poiscout.Verdict{IsValid: true, Name: poi.Name, Description: poi.Description, RawResponse: "Yes"}, nil
		},
	}
}

func TestRegistry_Register_stores_valid_POI(t *testing.T) {
	t.Parallel()

	r := crawl.NewRegistry(acceptAll())

	msg, err := r.Register(context.Background(), poiscout.POI{
		Name:        "Marina Beach",
		Description: "A natural urban beach.",
		Category:    "Beach",
		Location:    "Chennai",
	})

	require.NoError(t, err)
	assert.Equal(t, "POI registered: Marina Beach, Category: Beach, Location: Chennai", msg)

	pois := r.POIs()
	require.Len(t, pois, 1)
	assert.Equal(t, "A natural urban beach.", pois["Marina Beach"].Description)
}

func TestRegistry_Register_rejects_on_negative_verdict(t *testing.T) {
	t.Parallel()

	validator := &mock.Validator{
		ValidateFn: func(ctx context.Context, poi poiscout.POI) (*poiscout.Verdict, error) {
			return &poiscout.Verdict{IsValid: false, Name: poi.Name, Description: poi.Description, RawResponse: "No"}, nil
		},
	}
	r := crawl.NewRegistry(validator)

	msg, err := r.Register(context.Background(), poiscout.POI{
		Name:        "Explore Chennai",
		Description: "Discover the best places to visit in Chennai.",
	})

	require.NoError(t, err, "a rejection is not an error")
	assert.Equal(t, "POI validation failed for: Explore Chennai, Discover the best places to visit in Chennai.", msg)
	assert.Empty(t, r.POIs(), "rejected candidates are not stored")
}

func TestRegistry_Register_overwrites_by_name(t *testing.T) {
	t.Parallel()

	r := crawl.NewRegistry(acceptAll())

	_, err := r.Register(context.Background(), poiscout.POI{Name: "Fort", Description: "old description"})
	require.NoError(t, err)
	_, err = r.Register(context.Background(), poiscout.POI{Name: "Fort", Description: "new description", Category: "Historic"})
	require.NoError(t, err)

	pois := r.POIs()
	require.Len(t, pois, 1)
	assert.Equal(t, "new description", pois["Fort"].Description)
	assert.Equal(t, "Historic", pois["Fort"].Category)
}

func TestRegistry_Register_propagates_validator_error(t *testing.T) {
	t.Parallel()

	validator := &mock.Validator{
		ValidateFn: func(ctx context.Context, poi poiscout.POI) (*poiscout.Verdict, error) {
			return nil, errors.New("oracle unavailable")
		},
	}
	r := crawl.NewRegistry(validator)

	_, err := r.Register(context.Background(), poiscout.POI{Name: "Fort", Description: "desc"})

	require.Error(t, err)
	assert.Empty(t, r.POIs())
}

func TestRegistry_Register_rejects_incomplete_candidate(t *testing.T) {
	t.Parallel()

	called := false
	validator := &mock.Validator{
		ValidateFn: func(ctx context.Context, poi poiscout.POI) (*poiscout.Verdict, error) {
			called = true
			return &poiscout.Verdict{IsValid: true}, nil
		},
	}
	r := crawl.NewRegistry(validator)

	_, err := r.Register(context.Background(), poiscout.POI{Description: "no name"})

	require.Error(t, err)
	assert.Equal(t, poiscout.EINVALID, poiscout.ErrorCode(err))
	assert.False(t, called, "oracle is not consulted for malformed candidates")
}

func TestRegistry_ReportLink_appends_and_acknowledges(t *testing.T) {
	t.Parallel()

	r := crawl.NewRegistry(acceptAll())

	msg := r.ReportLink("https://example.com/guide/places", 0.9)

	assert.Equal(t, "Link registered: https://example.com/guide/places, AI score: 0.9", msg)
	assert.Equal(t, []poiscout.LinkReport{
		{URL: "https://example.com/guide/places", Score: 0.9},
	}, r.Links())
}

func TestRegistry_ReportLink_log_keeps_every_report(t *testing.T) {
	t.Parallel()

	r := crawl.NewRegistry(acceptAll())

	// Same URL at two scores: distinct observations, both logged.
	r.ReportLink("https://example.com/guide", 0.9)
	r.ReportLink("https://example.com/guide", 0.6)
	// An exact repeat still grows the log.
	r.ReportLink("https://example.com/guide", 0.9)

	assert.Len(t, r.Links(), 3)
}

func TestRegistry_NewLinks_deduplicates_by_url_score_pair(t *testing.T) {
	t.Parallel()

	r := crawl.NewRegistry(acceptAll())

	r.ReportLink("https://example.com/guide", 0.9)
	r.ReportLink("https://example.com/guide", 0.9) // identical pair, collapses
	r.ReportLink("https://example.com/guide", 0.6) // different score, distinct

	assert.Equal(t, []poiscout.LinkReport{
		{URL: "https://example.com/guide", Score: 0.9},
		{URL: "https://example.com/guide", Score: 0.6},
	}, r.NewLinks())
}

func TestRegistry_CommitNewLinks_keeps_pairs_deduplicated(t *testing.T) {
	t.Parallel()

	r := crawl.NewRegistry(acceptAll())

	r.ReportLink("https://example.com/guide", 0.9)
	r.CommitNewLinks()

	assert.Empty(t, r.NewLinks(), "commit drains the batch")

	// A committed pair reported again is not new.
	r.ReportLink("https://example.com/guide", 0.9)
	assert.Empty(t, r.NewLinks())
}

func TestRegistry_DiscardNewLinks_allows_pairs_to_requeue(t *testing.T) {
	t.Parallel()

	r := crawl.NewRegistry(acceptAll())

	r.ReportLink("https://example.com/guide", 0.9)
	r.DiscardNewLinks()

	assert.Empty(t, r.NewLinks(), "discard drains the batch")
	assert.Len(t, r.Links(), 1, "the log keeps discarded reports")

	// After a discard the same pair counts as new again.
	r.ReportLink("https://example.com/guide", 0.9)
	assert.Equal(t, []poiscout.LinkReport{
		{URL: "https://example.com/guide", Score: 0.9},
	}, r.NewLinks())
}

func TestRegistry_POIs_returns_copy(t *testing.T) {
	t.Parallel()

	r := crawl.NewRegistry(acceptAll())
	_, err := r.Register(context.Background(), poiscout.POI{Name: "Fort", Description: "desc"})
	require.NoError(t, err)

	pois := r.POIs()
	delete(pois, "Fort")

	assert.Len(t, r.POIs(), 1, "mutating the returned map does not affect the registry")
}
