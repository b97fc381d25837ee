package http

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/newsextract"
	"golang.org/x/time/rate"
)

var _ newsextract.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests per news site using token buckets.
// Both extraction tiers share one limiter, so a URL that falls through to
// tier 2 still respects the site's budget. It never influences results.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
}

// NewDomainLimiter returns a limiter allowing rps requests per second to
// each site, without bursting. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
// Hosts that differ only by case, port or a leading "www." share a bucket.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	key := siteKey(host)

	d.mu.Lock()
	bucket, ok := d.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(d.limit, 1)
		d.buckets[key] = bucket
	}
	d.mu.Unlock()

	return bucket.Wait(ctx)
}

func siteKey(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	return strings.TrimPrefix(host, "www.")
}
