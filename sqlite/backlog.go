package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fwojciec/newsextract"
)

// Compile-time interface verification.
var _ newsextract.BacklogService = (*BacklogService)(nil)

// BacklogService implements newsextract.BacklogService over the gatherer's
// articles table.
type BacklogService struct {
	db *DB
}

// NewBacklogService creates a new BacklogService.
func NewBacklogService(db *DB) *BacklogService {
	return &BacklogService{db: db}
}

// FindBacklogRecords returns articles newest first.
// Nullable text columns are read as empty strings.
func (s *BacklogService) FindBacklogRecords(ctx context.Context, filter newsextract.BacklogFilter) ([]*newsextract.BacklogRecord, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, newsextract.Errorf(newsextract.EINVALID, "limit and offset must not be negative")
	}

	var query strings.Builder
	query.WriteString(`
		SELECT id, url, canonical_url, title, domain, stored_at
		FROM articles
		ORDER BY stored_at DESC`)

	var args []any
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var records []*newsextract.BacklogRecord
	for rows.Next() {
		var rec newsextract.BacklogRecord
		var canonicalURL, title, domain sql.NullString
		var storedAt sql.NullInt64

		if err := rows.Scan(&rec.ID, &rec.URL, &canonicalURL, &title, &domain, &storedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}

		rec.CanonicalURL = canonicalURL.String
		rec.Title = title.String
		rec.Domain = domain.String
		rec.StoredAt = storedAt.Int64
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
