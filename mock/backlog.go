package mock

import (
	"context"

	"github.com/fwojciec/newsextract"
)

var _ newsextract.BacklogService = (*BacklogService)(nil)

// BacklogService is a mock implementation of newsextract.BacklogService.
type BacklogService struct {
	FindBacklogRecordsFn func(ctx context.Context, filter newsextract.BacklogFilter) ([]*newsextract.BacklogRecord, error)
}

func (s *BacklogService) FindBacklogRecords(ctx context.Context, filter newsextract.BacklogFilter) ([]*newsextract.BacklogRecord, error) {
	return s.FindBacklogRecordsFn(ctx, filter)
}

var _ newsextract.BacklogWriter = (*BacklogWriter)(nil)

// BacklogWriter is a mock implementation of newsextract.BacklogWriter.
type BacklogWriter struct {
	WriteEntryFn func(ctx context.Context, entry *newsextract.BacklogEntry) error
	CommitFn     func() error
	AbortFn      func() error
}

func (w *BacklogWriter) WriteEntry(ctx context.Context, entry *newsextract.BacklogEntry) error {
	return w.WriteEntryFn(ctx, entry)
}

func (w *BacklogWriter) Commit() error {
	return w.CommitFn()
}

func (w *BacklogWriter) Abort() error {
	return w.AbortFn()
}
