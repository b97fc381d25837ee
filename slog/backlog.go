package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsextract"
)

// Ensure LoggingBacklogService implements newsextract.BacklogService.
var _ newsextract.BacklogService = (*LoggingBacklogService)(nil)

// LoggingBacklogService wraps a BacklogService with debug logging.
type LoggingBacklogService struct {
	next   newsextract.BacklogService
	logger *slog.Logger
}

// NewLoggingBacklogService creates a new LoggingBacklogService.
func NewLoggingBacklogService(next newsextract.BacklogService, logger *slog.Logger) *LoggingBacklogService {
	return &LoggingBacklogService{next: next, logger: logger}
}

// FindBacklogRecords delegates to the wrapped service and logs the query.
func (s *LoggingBacklogService) FindBacklogRecords(ctx context.Context, filter newsextract.BacklogFilter) (records []*newsextract.BacklogRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("backlog query",
			"limit", filter.Limit,
			"offset", filter.Offset,
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindBacklogRecords(ctx, filter)
}
