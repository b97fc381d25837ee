package newsextract

// PageMeta holds article metadata declared in a page's markup: meta tags,
// Open Graph properties, and JSON-LD NewsArticle objects.
type PageMeta struct {
	Title       string
	Authors     []string
	PublishDate string
	Keywords    []string
	Description string
	Image       string
}

// MetaReader reads declared article metadata from raw HTML.
type MetaReader interface {
	ReadMeta(html string) (*PageMeta, error)
}
