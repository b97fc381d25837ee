// Package goquery reads declared article metadata from HTML using goquery.
package goquery

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsextract"
)

// Ensure MetaReader implements newsextract.MetaReader at compile time.
var _ newsextract.MetaReader = (*MetaReader)(nil)

// MetaReader extracts authors, keywords, publish date, description and lead
// image from meta tags and JSON-LD. Earlier sources win over later ones.
type MetaReader struct{}

// NewMetaReader creates a new MetaReader.
func NewMetaReader() *MetaReader {
	return &MetaReader{}
}

// ReadMeta parses html and returns whatever metadata it declares.
// Fields the page does not declare are left empty.
func (r *MetaReader) ReadMeta(html string) (*newsextract.PageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newsextract.Errorf(newsextract.EINVALID, "failed to parse HTML: %v", err)
	}

	ld := readLinkedData(doc)

	meta := &newsextract.PageMeta{
		Title: firstNonEmpty(
			metaContent(doc, `meta[property="og:title"]`),
			ld.headline,
			strings.TrimSpace(doc.Find("title").First().Text()),
		),
		PublishDate: firstNonEmpty(
			metaContent(doc, `meta[property="article:published_time"]`),
			metaContent(doc, `meta[itemprop="datePublished"]`),
			ld.datePublished,
			metaContent(doc, `meta[name="pubdate"]`),
			metaContent(doc, `meta[name="publishdate"]`),
			metaContent(doc, `meta[name="dc.date.issued"]`),
			attr(doc, `time[datetime]`, "datetime"),
		),
		Description: firstNonEmpty(
			metaContent(doc, `meta[property="og:description"]`),
			metaContent(doc, `meta[name="description"]`),
			ld.description,
		),
		Image: firstNonEmpty(
			metaContent(doc, `meta[property="og:image"]`),
			metaContent(doc, `meta[name="twitter:image"]`),
			ld.image,
			attr(doc, `link[rel="image_src"]`, "href"),
		),
	}

	var authors []string
	authors = append(authors, metaContents(doc, `meta[name="author"]`)...)
	for _, a := range metaContents(doc, `meta[property="article:author"]`) {
		// Facebook profile URLs are common here and are not names.
		if !isURL(a) {
			authors = append(authors, a)
		}
	}
	authors = append(authors, ld.authors...)
	authors = append(authors, metaContents(doc, `meta[name="dc.creator"]`)...)
	meta.Authors = dedupe(authors)

	var keywords []string
	for _, sel := range []string{`meta[name="keywords"]`, `meta[name="news_keywords"]`} {
		for _, v := range metaContents(doc, sel) {
			keywords = append(keywords, splitList(v)...)
		}
	}
	keywords = append(keywords, metaContents(doc, `meta[property="article:tag"]`)...)
	keywords = append(keywords, ld.keywords...)
	meta.Keywords = dedupe(keywords)

	return meta, nil
}

// linkedData is the subset of a JSON-LD article object we read.
type linkedData struct {
	headline      string
	datePublished string
	description   string
	image         string
	authors       []string
	keywords      []string
}

var articleTypes = map[string]bool{
	"NewsArticle":          true,
	"Article":              true,
	"ReportageNewsArticle": true,
	"AnalysisNewsArticle":  true,
	"OpinionNewsArticle":   true,
	"BlogPosting":          true,
	"WebPage":              true,
}

// readLinkedData returns the first article-typed JSON-LD object on the page.
// Malformed blocks are skipped; news sites ship broken JSON-LD regularly.
func readLinkedData(doc *goquery.Document) linkedData {
	var found linkedData
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return true
		}
		obj := findArticle(raw)
		if obj == nil {
			return true
		}
		found = linkedData{
			headline:      stringValue(obj["headline"]),
			datePublished: stringValue(obj["datePublished"]),
			description:   stringValue(obj["description"]),
			image:         imageValue(obj["image"]),
			authors:       nameValues(obj["author"]),
			keywords:      keywordValues(obj["keywords"]),
		}
		return false
	})
	return found
}

func findArticle(v any) map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if obj := findArticle(item); obj != nil {
				return obj
			}
		}
	case map[string]any:
		if graph, ok := t["@graph"]; ok {
			if obj := findArticle(graph); obj != nil {
				return obj
			}
		}
		if isArticleType(t["@type"]) {
			return t
		}
	}
	return nil
}

func isArticleType(v any) bool {
	switch t := v.(type) {
	case string:
		return articleTypes[t]
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && articleTypes[s] {
				return true
			}
		}
	}
	return false
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func imageValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		return stringValue(t["url"])
	case []any:
		for _, item := range t {
			if s := imageValue(item); s != "" {
				return s
			}
		}
	}
	return ""
}

func nameValues(v any) []string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	case map[string]any:
		if s := stringValue(t["name"]); s != "" {
			return []string{s}
		}
	case []any:
		var names []string
		for _, item := range t {
			names = append(names, nameValues(item)...)
		}
		return names
	}
	return nil
}

func keywordValues(v any) []string {
	switch t := v.(type) {
	case string:
		return splitList(t)
	case []any:
		var out []string
		for _, item := range t {
			if s := stringValue(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func metaContent(doc *goquery.Document, selector string) string {
	return attr(doc, selector, "content")
}

func metaContents(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if v := strings.TrimSpace(s.AttrOr("content", "")); v != "" {
			out = append(out, v)
		}
	})
	return out
}

func attr(doc *goquery.Document, selector, name string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr(name, ""))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// dedupe removes case-insensitive duplicates, keeping first occurrences.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
