// Package slog provides logging decorators for newsextract services.
package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/newsextract"
)

// Ensure LoggingFetcher implements newsextract.Fetcher.
var _ newsextract.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging. Each download is
// logged with the outlet host so one misbehaving site stands out.
type LoggingFetcher struct {
	next   newsextract.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next newsextract.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the download.
// Failures carry their error code.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"host", hostOf(rawURL),
			"url", rawURL,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", newsextract.ErrorCode(err), "err", err)
		}
		f.logger.DebugContext(ctx, "fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
