// Package http provides an HTTP-based implementation of newsextract.Fetcher.
// Each adapter gets its own Fetcher so it can present its own user agent.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/newsextract"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "newsextract/0.1 (+https://github.com/fwojciec/newsextract)"

// BrowserUserAgent is a desktop browser user agent for sites that block
// library defaults.
const BrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// maxBodyBytes caps the size of a downloaded page.
const maxBodyBytes = 10 << 20

// Ensure Fetcher implements newsextract.Fetcher at compile time.
var _ newsextract.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Response bodies are decoded to UTF-8 using the Content-Type header and
// in-document charset declarations, since many Turkish outlets still serve
// windows-1254 or ISO-8859-9.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	limiter     newsextract.DomainLimiter
	retryDelays []time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithDomainLimiter makes every request wait on the limiter for the URL's host.
func WithDomainLimiter(l newsextract.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithRetryDelays retries transport failures once per delay.
// Client errors (4xx) are never retried. No retries by default.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelays = delays
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// All failures are returned with code ETRANSPORT.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", newsextract.Errorf(newsextract.ETRANSPORT, "invalid URL %q", rawURL)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return "", newsextract.Errorf(newsextract.ETRANSPORT, "rate limit wait for %s: %v", rawURL, err)
		}
	}

	return fetchWithRetry(ctx, rawURL, f.fetchOnce, f.retryDelays)
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", newsextract.Errorf(newsextract.ETRANSPORT, "build request for %s: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", newsextract.Errorf(newsextract.ETRANSPORT, "GET %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newStatusError(resp.StatusCode, rawURL)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", newsextract.Errorf(newsextract.ETRANSPORT, "decode %s: %v", rawURL, err)
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return "", newsextract.Errorf(newsextract.ETRANSPORT, "read %s: %v", rawURL, err)
	}

	return string(b), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// statusError is a non-200 response. It unwraps to an ETRANSPORT error so
// callers treat it like any other transport failure.
type statusError struct {
	code int
	err  *newsextract.Error
}

func newStatusError(code int, url string) *statusError {
	return &statusError{
		code: code,
		err:  newsextract.Errorf(newsextract.ETRANSPORT, "HTTP %d for %s", code, url),
	}
}

func (e *statusError) Error() string { return e.err.Message }

func (e *statusError) Unwrap() error { return e.err }

// isClientError reports whether err is a 4xx response, which retrying won't fix.
func isClientError(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 400 && se.code < 500
	}
	return false
}
