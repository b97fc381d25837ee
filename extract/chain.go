// Package extract provides the article extraction chain.
// It tries each configured adapter in order, accepting the first result
// that passes the quality gate, and runs that chain over batches of URLs.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/newsextract"
)

// Chain orchestrates ordered-fallback extraction over a list of adapters.
// A Chain holds no per-call state and is safe for concurrent use.
type Chain struct {
	// Adapters are tried in order; the first accepted result wins.
	Adapters []newsextract.Adapter

	// MinTextLength is the quality gate threshold in characters.
	// Nil selects newsextract.DefaultMinTextLength; zero accepts any
	// non-empty text.
	MinTextLength *int

	// Concurrency bounds how many URLs ExtractBatch processes at once.
	// Defaults to 1.
	Concurrency int

	// Logger receives chain-level events. Defaults to discarding them.
	Logger *slog.Logger

	// Now stamps extracted articles. Defaults to time.Now in UTC.
	Now func() time.Time

	// Progress, if set, receives batch progress events.
	Progress ProgressFunc
}

// Extract runs url through the adapters in order.
//
// It returns the first Article whose text passes the quality gate.
// Transport and empty failures fall through to the next adapter.
// When every adapter is exhausted Extract returns (nil, nil): a page with
// no extractable article is a valid outcome, not an error.
// Any other adapter error, including a recovered panic, is returned.
func (c *Chain) Extract(ctx context.Context, url string) (*newsextract.Article, error) {
	minLength := c.minTextLength()

	for _, adapter := range c.Adapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := attempt(ctx, adapter, url)
		if err != nil {
			if newsextract.IsRecoverable(err) {
				continue
			}
			return nil, fmt.Errorf("extract %s with %s: %w", url, adapter.Method(), err)
		}
		if raw == nil || !newsextract.Accepts(raw.Text, minLength) {
			c.logger().Debug("below quality gate",
				"method", adapter.Method(),
				"url", url,
				"text_length", textLength(raw),
				"min_text_length", minLength,
			)
			continue
		}

		return newsextract.NewArticle(url, adapter.Method(), raw, c.now()), nil
	}

	c.logger().Error("extraction failed", "url", url, "min_text_length", minLength)
	return nil, nil
}

// attempt calls the adapter, converting a panic into an EINTERNAL error so
// one misbehaving adapter cannot take down a batch.
func attempt(ctx context.Context, adapter newsextract.Adapter, url string) (raw *newsextract.RawExtraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw = nil
			err = newsextract.Errorf(newsextract.EINTERNAL, "%s adapter panicked: %v", adapter.Method(), r)
		}
	}()
	return adapter.Attempt(ctx, url)
}

// Stats summarizes a batch result.
func (c *Chain) Stats(results *newsextract.BatchResult) newsextract.Stats {
	return newsextract.Summarize(results)
}

func textLength(raw *newsextract.RawExtraction) int {
	if raw == nil {
		return 0
	}
	return utf8.RuneCountInString(raw.Text)
}

func (c *Chain) minTextLength() int {
	if c.MinTextLength == nil {
		return newsextract.DefaultMinTextLength
	}
	return *c.MinTextLength
}

func (c *Chain) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now()
}

func (c *Chain) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}
