package http

import (
	"context"
	"time"

	"github.com/fwojciec/newsextract"
)

type fetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry calls fetch once, then once more per delay while it keeps
// failing. Client errors end the loop immediately.
func fetchWithRetry(ctx context.Context, url string, fetch fetchFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || isClientError(err) {
			break
		}

		select {
		case <-ctx.Done():
			return "", newsextract.Errorf(newsextract.ETRANSPORT, "GET %s: %v", url, ctx.Err())
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
