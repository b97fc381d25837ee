// Package trafilatura provides the tier-2 extraction adapter: a generic,
// density-based content extractor built on go-trafilatura.
package trafilatura

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/newsextract"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements newsextract.PayloadExtractor at compile time.
var _ newsextract.PayloadExtractor = (*Extractor)(nil)

// Payload is the JSON document produced by Extractor. Categories and Tags
// are semicolon-separated, as in trafilatura's own JSON output.
type Payload struct {
	Title      string `json:"title,omitempty"`
	Author     string `json:"author,omitempty"`
	Hostname   string `json:"hostname,omitempty"`
	Date       string `json:"date,omitempty"`
	Categories string `json:"categories,omitempty"`
	Tags       string `json:"tags,omitempty"`
	Text       string `json:"text"`
	Excerpt    string `json:"excerpt,omitempty"`
	Image      string `json:"image,omitempty"`
	Language   string `json:"language,omitempty"`
	Sitename   string `json:"sitename,omitempty"`
	Source     string `json:"source,omitempty"`
}

// Extractor wraps go-trafilatura to extract main content and metadata from HTML.
type Extractor struct {
	// Language is the expected document language, e.g. "tr".
	// Empty disables trafilatura's language filter.
	Language string

	// ExcludeTables drops table content from the extracted text.
	ExcludeTables bool
}

// NewExtractor creates a new Extractor that keeps tables and does not
// filter by language.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractPayload runs trafilatura over rawHTML and serializes the result.
// Comments are always excluded.
func (e *Extractor) ExtractPayload(rawHTML, rawURL string, withMetadata bool) ([]byte, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsextract.Errorf(newsextract.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   e.ExcludeTables,
		TargetLanguage:  e.Language,
	}
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := extract(rawHTML, opts)
	if err != nil {
		return nil, err
	}
	if result == nil || strings.TrimSpace(result.ContentText) == "" {
		return nil, nil
	}

	p := Payload{Text: result.ContentText}
	if withMetadata {
		m := result.Metadata
		p.Title = m.Title
		p.Author = m.Author
		p.Hostname = m.Hostname
		p.Categories = strings.Join(m.Categories, ";")
		p.Tags = strings.Join(m.Tags, ";")
		p.Excerpt = m.Description
		p.Image = m.Image
		p.Language = m.Language
		p.Sitename = m.Sitename
		p.Source = m.URL
		if !m.Date.IsZero() {
			p.Date = m.Date.Format("2006-01-02")
		}
	}

	return json.Marshal(p)
}

// extract calls trafilatura, converting panics on pathological documents
// into errors.
func extract(rawHTML string, opts trafilatura.Options) (result *trafilatura.ExtractResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("trafilatura panic: %v", r)
		}
	}()
	return trafilatura.Extract(strings.NewReader(rawHTML), opts)
}
