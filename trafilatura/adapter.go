package trafilatura

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/newsextract"
)

// Ensure Adapter implements newsextract.Adapter at compile time.
var _ newsextract.Adapter = (*Adapter)(nil)

// Adapter performs its own download, hands the raw document to a payload
// extractor with metadata enabled, and maps the JSON payload to a
// RawExtraction. It is the broad-coverage fallback tier and the only one
// that reports categories.
type Adapter struct {
	fetcher   newsextract.Fetcher
	extractor newsextract.PayloadExtractor
}

// NewAdapter creates a new Adapter.
func NewAdapter(fetcher newsextract.Fetcher, extractor newsextract.PayloadExtractor) *Adapter {
	return &Adapter{fetcher: fetcher, extractor: extractor}
}

// Method returns newsextract.MethodTrafilatura.
func (a *Adapter) Method() newsextract.Method {
	return newsextract.MethodTrafilatura
}

// Attempt downloads rawURL and extracts the article.
// A payload that is not valid JSON is returned as EINTERNAL: it means the
// extractor broke its contract, not that the page was unparseable.
func (a *Adapter) Attempt(ctx context.Context, rawURL string) (*newsextract.RawExtraction, error) {
	html, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if newsextract.ErrorCode(err) == newsextract.ETRANSPORT {
			return nil, err
		}
		return nil, newsextract.Errorf(newsextract.ETRANSPORT, "%v", err)
	}

	data, err := a.extractor.ExtractPayload(html, rawURL, true)
	if err != nil {
		return nil, newsextract.Errorf(newsextract.EEMPTY, "trafilatura: %v", err)
	}
	if len(data) == 0 {
		return nil, newsextract.Errorf(newsextract.EEMPTY, "trafilatura returned empty payload")
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, newsextract.Errorf(newsextract.EINTERNAL, "unable to decode trafilatura payload for %s: %v", rawURL, err)
	}

	if strings.TrimSpace(p.Text) == "" {
		return nil, newsextract.Errorf(newsextract.EEMPTY, "trafilatura payload has no text")
	}

	return &newsextract.RawExtraction{
		Title:       p.Title,
		Text:        p.Text,
		Authors:     splitList(p.Author),
		PublishDate: optional(p.Date),
		Keywords:    splitList(p.Tags),
		Categories:  splitList(p.Categories),
		Description: optional(p.Excerpt),
		Image:       optional(p.Image),
	}, nil
}

// splitList splits a semicolon-separated payload field.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
