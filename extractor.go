package newsextract

// PayloadExtractor is a generic content extractor working on pre-fetched HTML.
// It returns a serialized JSON document rather than plain text.
type PayloadExtractor interface {
	// ExtractPayload extracts the main content of html. When withMetadata is
	// set the payload also carries title, author, date and the other
	// document metadata. A nil payload with a nil error means no content
	// was found.
	ExtractPayload(html, url string, withMetadata bool) ([]byte, error)
}
