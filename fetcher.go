package newsextract

import "context"

// Fetcher retrieves raw HTML from URLs.
// Each adapter owns its own Fetcher so it can use its own user agent.
type Fetcher interface {
	// Fetch downloads the page and returns its HTML decoded to UTF-8.
	// Network and HTTP status failures are returned as ETRANSPORT.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
