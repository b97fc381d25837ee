package extract

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/newsextract"
	"golang.org/x/sync/errgroup"
)

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
// It may be called from multiple goroutines.
type ProgressFunc func(event ProgressEvent)

// ExtractBatch runs Extract over every distinct URL in urls.
//
// Each URL is processed independently: an error for one URL is recorded in
// its ExtractionResult and never affects the others. Duplicate URLs are
// processed once. Results are assembled only after every URL is done.
func (c *Chain) ExtractBatch(ctx context.Context, urls []string) *newsextract.BatchResult {
	unique := dedupe(urls)
	results := make([]*newsextract.ExtractionResult, len(unique))
	total := len(unique)

	c.notify(ProgressEvent{Type: ProgressStarted, Total: total})

	var completed atomic.Int64

	// Workers never return errors, so the group only bounds concurrency
	// and one URL's failure cannot cancel the rest.
	var g errgroup.Group
	g.SetLimit(c.concurrency())
	for i, url := range unique {
		g.Go(func() error {
			result, err := c.extractOne(ctx, url)
			results[i] = result

			event := ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Add(1)),
				Total:     total,
				URL:       url,
				Error:     err,
			}
			if !result.OK() {
				event.Type = ProgressFailed
			}
			c.notify(event)
			return nil
		})
	}
	_ = g.Wait()

	batch := &newsextract.BatchResult{
		URLs:    unique,
		Results: make(map[string]*newsextract.ExtractionResult, total),
	}
	for i, url := range unique {
		batch.Results[url] = results[i]
	}

	c.notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return batch
}

// extractOne turns Extract's return values into a result record.
// The error is returned as well for progress reporting.
func (c *Chain) extractOne(ctx context.Context, url string) (*newsextract.ExtractionResult, error) {
	article, err := c.Extract(ctx, url)
	if err != nil {
		return &newsextract.ExtractionResult{Error: err.Error()}, err
	}
	return &newsextract.ExtractionResult{Article: article}, nil
}

// ExtractBacklog runs the batch over the records' source URLs and pairs
// each record with its result, preserving record order.
func (c *Chain) ExtractBacklog(ctx context.Context, records []*newsextract.BacklogRecord) []*newsextract.BacklogEntry {
	urls := make([]string, len(records))
	for i, rec := range records {
		urls[i] = rec.URL
	}

	batch := c.ExtractBatch(ctx, urls)

	entries := make([]*newsextract.BacklogEntry, len(records))
	for i, rec := range records {
		entries[i] = newsextract.NewBacklogEntry(rec, batch.Get(rec.URL))
	}
	return entries
}

func (c *Chain) concurrency() int {
	if c.Concurrency <= 0 {
		return 1
	}
	return c.Concurrency
}

func (c *Chain) notify(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

// dedupe returns urls without repeats, in first-submission order.
func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, url := range urls {
		if seen[url] {
			continue
		}
		seen[url] = true
		out = append(out, url)
	}
	return out
}
