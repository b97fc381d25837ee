package newsextract

import "context"

// RawExtraction is the normalized partial record an adapter returns.
// Only Text is required; other fields are best-effort.
type RawExtraction struct {
	Title       string
	Text        string
	Authors     []string
	PublishDate *string
	Keywords    []string
	Categories  []string
	Description *string
	Image       *string
}

// Adapter wraps one external content-extraction capability.
type Adapter interface {
	// Method identifies the adapter in produced Articles.
	Method() Method

	// Attempt downloads the page at url and extracts its content.
	// Recoverable failures are returned as ETRANSPORT (network, timeout,
	// HTTP status) or EEMPTY (page fetched, no usable content).
	// Any other error means the capability broke its contract.
	Attempt(ctx context.Context, url string) (*RawExtraction, error)
}
