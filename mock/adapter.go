package mock

import (
	"context"

	"github.com/fwojciec/newsextract"
)

var _ newsextract.Adapter = (*Adapter)(nil)

// Adapter is a mock implementation of newsextract.Adapter.
type Adapter struct {
	MethodFn  func() newsextract.Method
	AttemptFn func(ctx context.Context, url string) (*newsextract.RawExtraction, error)
}

func (a *Adapter) Method() newsextract.Method {
	return a.MethodFn()
}

func (a *Adapter) Attempt(ctx context.Context, url string) (*newsextract.RawExtraction, error) {
	return a.AttemptFn(ctx, url)
}
