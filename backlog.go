package newsextract

import "context"

// BacklogRecord is a previously discovered article row owned by an external
// news gatherer. StoredAt is a Unix timestamp.
type BacklogRecord struct {
	ID           int64  `json:"id"`
	URL          string `json:"url"`
	CanonicalURL string `json:"canonicalUrl"`
	Title        string `json:"title"`
	Domain       string `json:"domain"`
	StoredAt     int64  `json:"storedAt"`
}

// BacklogFilter represents a filter for FindBacklogRecords.
type BacklogFilter struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BacklogService reads candidate URLs from the backlog store.
type BacklogService interface {
	// FindBacklogRecords returns records ordered by recency, newest first.
	FindBacklogRecords(ctx context.Context, filter BacklogFilter) ([]*BacklogRecord, error)
}

// BacklogEntry is one output row of a backlog re-extraction run.
type BacklogEntry struct {
	ArticleID    int64    `json:"article_id"`
	CanonicalURL string   `json:"canonical_url"`
	SourceURL    string   `json:"source_url"`
	Title        string   `json:"title"`
	Domain       string   `json:"domain"`
	StoredAt     int64    `json:"stored_at"`
	Extraction   *Article `json:"extraction"`
	Error        *string  `json:"error"`
}

// NewBacklogEntry pairs a backlog record with its extraction result.
// A nil result yields an entry with neither extraction nor error.
func NewBacklogEntry(rec *BacklogRecord, result *ExtractionResult) *BacklogEntry {
	entry := &BacklogEntry{
		ArticleID:    rec.ID,
		CanonicalURL: rec.CanonicalURL,
		SourceURL:    rec.URL,
		Title:        rec.Title,
		Domain:       rec.Domain,
		StoredAt:     rec.StoredAt,
	}
	if result == nil {
		return entry
	}
	entry.Extraction = result.Article
	if result.Error != "" {
		msg := result.Error
		entry.Error = &msg
	}
	return entry
}

// BacklogWriter persists backlog entries with atomic semantics.
// WriteEntry writes to a temporary location; Commit makes the output
// permanent; Abort discards it.
type BacklogWriter interface {
	WriteEntry(ctx context.Context, entry *BacklogEntry) error
	Commit() error
	Abort() error
}

// BacklogSummary is the terminal summary of a backlog run.
type BacklogSummary struct {
	Total       int     `json:"total"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
}

// SummarizeBacklog counts entries that carry an extraction.
func SummarizeBacklog(entries []*BacklogEntry) BacklogSummary {
	var s BacklogSummary
	s.Total = len(entries)
	for _, e := range entries {
		if e.Extraction != nil {
			s.Successes++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Successes) / float64(s.Total) * 100
	}
	return s
}
