package mock

import "github.com/fwojciec/newsextract"

var _ newsextract.PayloadExtractor = (*PayloadExtractor)(nil)

// PayloadExtractor is a mock implementation of newsextract.PayloadExtractor.
type PayloadExtractor struct {
	ExtractPayloadFn func(html, url string, withMetadata bool) ([]byte, error)
}

func (e *PayloadExtractor) ExtractPayload(html, url string, withMetadata bool) ([]byte, error) {
	return e.ExtractPayloadFn(html, url, withMetadata)
}
