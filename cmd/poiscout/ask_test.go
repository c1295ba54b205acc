package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/poiscout"
	main "github.com/fwojciec/poiscout/cmd/poiscout"
	"github.com/fwojciec/poiscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the answer", func(t *testing.T) {
		t.Parallel()

		crawls := &mock.CrawlService{
			FindCrawlByIDFn: func(_ context.Context, id string) (*poiscout.Crawl, error) {
				return &poiscout.Crawl{ID: id, SeedURL: "https://www.chennai.com"}, nil
			},
		}

		asker := &mock.Asker{
			AskFn: func(_ context.Context, crawlID, question string) (string, error) {
				assert.Equal(t, "crawl-1", crawlID)
				assert.Equal(t, "Is there a beach?", question)
				return "Yes, Marina Beach is a long urban beach on the Bay of Bengal.", nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Crawls: crawls,
			Asker:  asker,
		}

		cmd := &main.AskCmd{CrawlID: "crawl-1", Question: "Is there a beach?"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Marina Beach")
	})

	t.Run("returns error when crawl not found", func(t *testing.T) {
		t.Parallel()

		crawls := &mock.CrawlService{
			FindCrawlByIDFn: func(_ context.Context, id string) (*poiscout.Crawl, error) {
				return nil, poiscout.Errorf(poiscout.ENOTFOUND, "crawl not found")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Crawls: crawls,
		}

		cmd := &main.AskCmd{CrawlID: "missing", Question: "anything?"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, poiscout.ENOTFOUND, poiscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), `crawl "missing" not found`)
	})

	t.Run("propagates asker errors", func(t *testing.T) {
		t.Parallel()

		crawls := &mock.CrawlService{
			FindCrawlByIDFn: func(_ context.Context, id string) (*poiscout.Crawl, error) {
				return &poiscout.Crawl{ID: id, SeedURL: "https://www.chennai.com"}, nil
			},
		}

		asker := &mock.Asker{
			AskFn: func(_ context.Context, _, _ string) (string, error) {
				return "", poiscout.Errorf(poiscout.ENOTFOUND, "no POIs recorded for crawl")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Crawls: crawls,
			Asker:  asker,
		}

		cmd := &main.AskCmd{CrawlID: "crawl-1", Question: "anything?"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "no POIs recorded")
	})
}
