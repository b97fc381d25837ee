package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/goquery"
	nehttp "github.com/fwojciec/newsextract/http"
	"github.com/fwojciec/newsextract/readability"
	neslog "github.com/fwojciec/newsextract/slog"
	"github.com/fwojciec/newsextract/trafilatura"
)

// Config describes the default two-tier chain built by NewChain.
// Zero values select the defaults noted on each field.
type Config struct {
	// MinTextLength is the quality gate threshold. Nil selects 100.
	MinTextLength *int

	// Timeout bounds each HTTP request. Defaults to 10s.
	Timeout time.Duration

	// Concurrency bounds parallel URLs in a batch. Defaults to 1.
	Concurrency int

	// Language is the expected article language passed to the tier-2
	// extractor, e.g. "tr". Empty disables language filtering.
	Language string

	// ReadabilityUserAgent is sent by the tier-1 fetcher.
	// Defaults to nehttp.DefaultUserAgent.
	ReadabilityUserAgent string

	// TrafilaturaUserAgent is sent by the tier-2 fetcher.
	// Defaults to nehttp.BrowserUserAgent, since some outlets block library agents.
	TrafilaturaUserAgent string

	// RateLimit is the per-domain request rate shared by both tiers, in
	// requests per second. Zero disables rate limiting.
	RateLimit float64

	// Retries is the number of retries for failed fetches, backing off
	// 1s, 2s, 4s and so on. Zero disables retries.
	Retries int

	// Logger, if set, logs fetches, adapter attempts and chain failures.
	Logger *slog.Logger
}

// NewChain builds the standard chain: a structured readability parser
// first, falling back to the trafilatura content extractor. Each tier
// downloads the page itself with its own user agent.
func NewChain(cfg Config) *Chain {
	var limiter newsextract.DomainLimiter
	if cfg.RateLimit > 0 {
		limiter = nehttp.NewDomainLimiter(cfg.RateLimit)
	}

	fetcher := func(userAgent, fallback string) newsextract.Fetcher {
		if userAgent == "" {
			userAgent = fallback
		}
		opts := []nehttp.Option{
			nehttp.WithUserAgent(userAgent),
			nehttp.WithRetryDelays(retryDelays(cfg.Retries)),
		}
		if cfg.Timeout > 0 {
			opts = append(opts, nehttp.WithTimeout(cfg.Timeout))
		}
		if limiter != nil {
			opts = append(opts, nehttp.WithDomainLimiter(limiter))
		}

		var f newsextract.Fetcher = nehttp.NewFetcher(opts...)
		if cfg.Logger != nil {
			f = neslog.NewLoggingFetcher(f, cfg.Logger)
		}
		return f
	}

	extractor := trafilatura.NewExtractor()
	extractor.Language = cfg.Language

	adapters := []newsextract.Adapter{
		readability.NewAdapter(fetcher(cfg.ReadabilityUserAgent, nehttp.DefaultUserAgent), goquery.NewMetaReader()),
		trafilatura.NewAdapter(fetcher(cfg.TrafilaturaUserAgent, nehttp.BrowserUserAgent), extractor),
	}
	if cfg.Logger != nil {
		for i, a := range adapters {
			adapters[i] = neslog.NewLoggingAdapter(a, cfg.Logger)
		}
	}

	return &Chain{
		Adapters:      adapters,
		MinTextLength: cfg.MinTextLength,
		Concurrency:   cfg.Concurrency,
		Logger:        cfg.Logger,
	}
}

// ExtractArticle extracts a single URL with the default chain.
func ExtractArticle(ctx context.Context, url string) (*newsextract.Article, error) {
	return NewChain(Config{}).Extract(ctx, url)
}

// retryDelays returns the first n fetch backoff delays, doubling past
// the http package defaults when more retries are requested.
func retryDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := nehttp.DefaultRetryDelays()
	for len(delays) < n {
		delays = append(delays, delays[len(delays)-1]*2)
	}
	return delays[:n]
}
