package newsextract

import (
	"time"
	"unicode/utf8"
)

// DefaultMinTextLength is the quality gate threshold used when none is configured.
const DefaultMinTextLength = 100

// Method identifies which adapter produced an Article.
type Method string

// Method constants for the two configured tiers.
const (
	MethodReadability Method = "readability"
	MethodTrafilatura Method = "trafilatura"
)

// Article is the normalized record of one successfully extracted document.
// It is built once by NewArticle and not modified afterwards.
type Article struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	Authors     []string  `json:"authors"`
	PublishDate *string   `json:"date"`
	Keywords    []string  `json:"keywords"`
	Categories  []string  `json:"categories,omitempty"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Method      Method    `json:"method"`
	TextLength  int       `json:"text_length"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// NewArticle builds an Article from an adapter's raw extraction.
// TextLength is derived from Text; Authors and Keywords are never nil.
func NewArticle(url string, method Method, raw *RawExtraction, extractedAt time.Time) *Article {
	a := &Article{
		URL:         url,
		Title:       raw.Title,
		Text:        raw.Text,
		Authors:     nonNil(raw.Authors),
		PublishDate: raw.PublishDate,
		Keywords:    nonNil(raw.Keywords),
		Description: raw.Description,
		Image:       raw.Image,
		Method:      method,
		TextLength:  utf8.RuneCountInString(raw.Text),
		ExtractedAt: extractedAt,
	}
	if len(raw.Categories) > 0 {
		a.Categories = append([]string(nil), raw.Categories...)
	}
	return a
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}

// Accepts reports whether extracted text passes the quality gate.
// Length is measured in characters, not bytes.
func Accepts(text string, minLength int) bool {
	return text != "" && utf8.RuneCountInString(text) >= minLength
}

// ExtractionResult is the outcome of one URL through the chain.
// Article is nil when no tier produced acceptable text. Error is set only
// when an adapter failed unexpectedly.
type ExtractionResult struct {
	Article *Article `json:"extraction"`
	Error   string   `json:"error,omitempty"`
}

// OK reports whether the result carries an accepted Article.
func (r *ExtractionResult) OK() bool {
	return r != nil && r.Article != nil
}

// BatchResult maps each submitted URL to its extraction result.
// URLs preserves first-submission order; duplicate submissions collapse to
// a single entry.
type BatchResult struct {
	URLs    []string
	Results map[string]*ExtractionResult
}

// Len returns the number of distinct URLs in the batch.
func (b *BatchResult) Len() int {
	if b == nil {
		return 0
	}
	return len(b.URLs)
}

// Get returns the result for url, or nil if url was not part of the batch.
func (b *BatchResult) Get(url string) *ExtractionResult {
	if b == nil {
		return nil
	}
	return b.Results[url]
}

// Articles returns accepted articles in submission order.
func (b *BatchResult) Articles() []*Article {
	if b == nil {
		return nil
	}
	var articles []*Article
	for _, url := range b.URLs {
		if r := b.Results[url]; r.OK() {
			articles = append(articles, r.Article)
		}
	}
	return articles
}
