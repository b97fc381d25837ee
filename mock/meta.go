package mock

import "github.com/fwojciec/newsextract"

var _ newsextract.MetaReader = (*MetaReader)(nil)

// MetaReader is a mock implementation of newsextract.MetaReader.
type MetaReader struct {
	ReadMetaFn func(html string) (*newsextract.PageMeta, error)
}

func (r *MetaReader) ReadMeta(html string) (*newsextract.PageMeta, error) {
	return r.ReadMetaFn(html)
}
