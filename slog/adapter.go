package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsextract"
)

// Ensure LoggingAdapter implements newsextract.Adapter.
var _ newsextract.Adapter = (*LoggingAdapter)(nil)

// LoggingAdapter wraps an Adapter and logs every attempt.
// Successful and recoverable attempts log at debug; contract violations at warn.
type LoggingAdapter struct {
	next   newsextract.Adapter
	logger *slog.Logger
}

// NewLoggingAdapter creates a new LoggingAdapter.
func NewLoggingAdapter(next newsextract.Adapter, logger *slog.Logger) *LoggingAdapter {
	return &LoggingAdapter{next: next, logger: logger}
}

// Method delegates to the wrapped adapter.
func (a *LoggingAdapter) Method() newsextract.Method {
	return a.next.Method()
}

// Attempt delegates to the wrapped adapter and logs the outcome.
func (a *LoggingAdapter) Attempt(ctx context.Context, url string) (raw *newsextract.RawExtraction, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil && !newsextract.IsRecoverable(err) {
			level = slog.LevelWarn
		}
		var textLength int
		if raw != nil {
			textLength = len([]rune(raw.Text))
		}
		a.logger.Log(ctx, level, "attempt",
			"method", a.next.Method(),
			"url", url,
			"text_length", textLength,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Attempt(ctx, url)
}
