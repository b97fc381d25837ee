// Package readability provides the tier-1 extraction adapter: a structured
// article parser built on go-readability, enriched with metadata the page
// declares in its markup.
package readability

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/newsextract"
	"github.com/go-shiori/go-readability"
)

// Ensure Adapter implements newsextract.Adapter at compile time.
var _ newsextract.Adapter = (*Adapter)(nil)

// Adapter downloads a page and parses it with go-readability.
// It favours precise metadata over coverage: pages whose layout readability
// does not recognise fail with EEMPTY rather than yielding noise.
type Adapter struct {
	fetcher newsextract.Fetcher
	meta    newsextract.MetaReader
}

// NewAdapter creates a new Adapter. meta may be nil, in which case only the
// fields readability itself reports are filled.
func NewAdapter(fetcher newsextract.Fetcher, meta newsextract.MetaReader) *Adapter {
	return &Adapter{fetcher: fetcher, meta: meta}
}

// Method returns newsextract.MethodReadability.
func (a *Adapter) Method() newsextract.Method {
	return newsextract.MethodReadability
}

// Attempt downloads rawURL and extracts the article.
func (a *Adapter) Attempt(ctx context.Context, rawURL string) (*newsextract.RawExtraction, error) {
	html, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, transportError(err)
	}

	article, err := parse(html, rawURL)
	if err != nil {
		return nil, newsextract.Errorf(newsextract.EEMPTY, "readability: %v", err)
	}

	text := articleText(article)
	if text == "" {
		return nil, newsextract.Errorf(newsextract.EEMPTY, "readability found no article text")
	}

	meta := &newsextract.PageMeta{}
	if a.meta != nil {
		// Metadata is best-effort; a page readability can parse is still usable without it.
		if m, err := a.meta.ReadMeta(html); err == nil {
			meta = m
		}
	}

	raw := &newsextract.RawExtraction{
		Title:    firstNonEmpty(strings.TrimSpace(article.Title), meta.Title),
		Text:     text,
		Authors:  meta.Authors,
		Keywords: meta.Keywords,
	}
	if len(raw.Authors) == 0 {
		if byline := strings.TrimSpace(article.Byline); byline != "" {
			raw.Authors = []string{byline}
		}
	}

	switch {
	case meta.PublishDate != "":
		d := meta.PublishDate
		raw.PublishDate = &d
	case article.PublishedTime != nil:
		d := article.PublishedTime.Format(time.RFC3339)
		raw.PublishDate = &d
	}

	raw.Description = optional(firstNonEmpty(meta.Description, strings.TrimSpace(article.Excerpt)))
	raw.Image = optional(firstNonEmpty(strings.TrimSpace(article.Image), meta.Image))

	return raw, nil
}

// parse runs go-readability, converting panics from malformed documents
// into errors.
func parse(html, rawURL string) (article readability.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while parsing: %v", r)
		}
	}()

	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return readability.Article{}, err
	}
	return readability.FromReader(strings.NewReader(html), pageURL)
}

// transportError keeps fetch failures coded ETRANSPORT whatever the fetcher returned.
func transportError(err error) error {
	if newsextract.ErrorCode(err) == newsextract.ETRANSPORT {
		return err
	}
	return newsextract.Errorf(newsextract.ETRANSPORT, "%v", err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
