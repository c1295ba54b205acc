package scrape

import (
	"context"
	"log/slog"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays attempts to fetch a URL with backoff retries, one
// attempt per delay plus the initial try. A nil logger silences retry
// logging.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger.Debug("fetch retry", "url", url, "attempt", attempt+2, "err", err)
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
