package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkService_CreateLinks(t *testing.T) {
	t.Parallel()

	t.Run("persists links in report order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		crawl := createTestCrawl(t, db)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()

		reports := []poiscout.LinkReport{
			{URL: "https://www.chennai.com/places/beaches", Score: 0.9},
			{URL: "https://www.chennai.com/places/temples", Score: 0.85},
			{URL: "https://www.chennai.com/blog/monsoon-season", Score: 0.4},
		}

		err := svc.CreateLinks(ctx, crawl.ID, reports)
		require.NoError(t, err)

		links, err := svc.FindLinks(ctx, poiscout.LinkFilter{CrawlID: &crawl.ID})
		require.NoError(t, err)
		require.Len(t, links, 3)
		for i, link := range links {
			assert.Equal(t, i, link.Position)
			assert.Equal(t, reports[i].URL, link.URL)
			assert.Equal(t, reports[i].Score, link.Score)
			assert.NotEmpty(t, link.ID, "ID should be generated")
			assert.False(t, link.CreatedAt.IsZero(), "CreatedAt should be set")
		}
	})

	t.Run("allows duplicate URLs with different scores", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		crawl := createTestCrawl(t, db)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()

		// The same URL can be reported from several pages, each time with
		// the score that page's scraper assigned.
		reports := []poiscout.LinkReport{
			{URL: "https://www.chennai.com/places/beaches", Score: 0.9},
			{URL: "https://www.chennai.com/places/beaches", Score: 0.55},
		}

		err := svc.CreateLinks(ctx, crawl.ID, reports)
		require.NoError(t, err)

		links, err := svc.FindLinks(ctx, poiscout.LinkFilter{CrawlID: &crawl.ID})
		require.NoError(t, err)
		assert.Len(t, links, 2)
	})

	t.Run("returns error for missing crawl ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()

		err := svc.CreateLinks(ctx, "", []poiscout.LinkReport{
			{URL: "https://www.chennai.com/places/beaches", Score: 0.9},
		})
		require.Error(t, err)
		assert.Equal(t, poiscout.EINVALID, poiscout.ErrorCode(err))
	})

	t.Run("accepts empty batch", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		crawl := createTestCrawl(t, db)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()

		err := svc.CreateLinks(ctx, crawl.ID, nil)
		require.NoError(t, err)

		links, err := svc.FindLinks(ctx, poiscout.LinkFilter{CrawlID: &crawl.ID})
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}

func TestLinkService_FindLinks(t *testing.T) {
	t.Parallel()

	t.Run("filters by crawl ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()

		// Create two crawls with links
		crawlSvc := sqlite.NewCrawlService(db)
		c1 := &poiscout.Crawl{SeedURL: "https://www.chennai.com"}
		c2 := &poiscout.Crawl{SeedURL: "https://www.kochi.org"}
		require.NoError(t, crawlSvc.CreateCrawl(ctx, c1))
		require.NoError(t, crawlSvc.CreateCrawl(ctx, c2))

		require.NoError(t, svc.CreateLinks(ctx, c1.ID, []poiscout.LinkReport{
			{URL: "https://www.chennai.com/places/beaches", Score: 0.9},
			{URL: "https://www.chennai.com/places/temples", Score: 0.85},
		}))
		require.NoError(t, svc.CreateLinks(ctx, c2.ID, []poiscout.LinkReport{
			{URL: "https://www.kochi.org/attractions", Score: 0.8},
		}))

		links, err := svc.FindLinks(ctx, poiscout.LinkFilter{CrawlID: &c1.ID})
		require.NoError(t, err)
		assert.Len(t, links, 2)
	})

	t.Run("filters by URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		crawl := createTestCrawl(t, db)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateLinks(ctx, crawl.ID, []poiscout.LinkReport{
			{URL: "https://www.chennai.com/places/beaches", Score: 0.9},
			{URL: "https://www.chennai.com/places/temples", Score: 0.85},
		}))

		url := "https://www.chennai.com/places/temples"
		links, err := svc.FindLinks(ctx, poiscout.LinkFilter{URL: &url})
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, url, links[0].URL)
	})

	t.Run("filters by minimum score", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		crawl := createTestCrawl(t, db)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateLinks(ctx, crawl.ID, []poiscout.LinkReport{
			{URL: "https://www.chennai.com/places/beaches", Score: 0.9},
			{URL: "https://www.chennai.com/blog/monsoon-season", Score: 0.4},
			{URL: "https://www.chennai.com/places/temples", Score: 0.7},
		}))

		minScore := 0.7
		links, err := svc.FindLinks(ctx, poiscout.LinkFilter{MinScore: &minScore})
		require.NoError(t, err)
		require.Len(t, links, 2)
		for _, link := range links {
			assert.GreaterOrEqual(t, link.Score, 0.7)
		}
	})

	t.Run("orders by position", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		crawl := createTestCrawl(t, db)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateLinks(ctx, crawl.ID, []poiscout.LinkReport{
			{URL: "https://www.chennai.com/places/beaches", Score: 0.2},
			{URL: "https://www.chennai.com/places/temples", Score: 0.95},
			{URL: "https://www.chennai.com/places/museums", Score: 0.6},
		}))

		links, err := svc.FindLinks(ctx, poiscout.LinkFilter{CrawlID: &crawl.ID})
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, "https://www.chennai.com/places/beaches", links[0].URL)
		assert.Equal(t, "https://www.chennai.com/places/temples", links[1].URL)
		assert.Equal(t, "https://www.chennai.com/places/museums", links[2].URL)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		crawl := createTestCrawl(t, db)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateLinks(ctx, crawl.ID, []poiscout.LinkReport{
			{URL: "https://www.chennai.com/places/a", Score: 0.1},
			{URL: "https://www.chennai.com/places/b", Score: 0.2},
			{URL: "https://www.chennai.com/places/c", Score: 0.3},
			{URL: "https://www.chennai.com/places/d", Score: 0.4},
			{URL: "https://www.chennai.com/places/e", Score: 0.5},
		}))

		links, err := svc.FindLinks(ctx, poiscout.LinkFilter{CrawlID: &crawl.ID, Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "https://www.chennai.com/places/b", links[0].URL)
		assert.Equal(t, "https://www.chennai.com/places/c", links[1].URL)
	})
}
