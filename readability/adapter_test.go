package readability_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/goquery"
	"github.com/fwojciec/newsextract/mock"
	"github.com/fwojciec/newsextract/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Adapter implements newsextract.Adapter at compile time.
var _ newsextract.Adapter = (*readability.Adapter)(nil)

const paragraph = "Ankara'da bugün gerçekleştirilen basın toplantısında açıklanan yeni düzenleme, " +
	"kamuoyunda geniş yankı uyandırdı. Uzmanlar düzenlemenin ekonomiye etkilerini değerlendirirken, " +
	"muhalefet partileri de konuya ilişkin ayrıntılı açıklamalar yaptı ve sürecin takipçisi olacaklarını belirtti."

func newsPage() string {
	return `<!DOCTYPE html>
<html lang="tr">
<head>
<title>Yeni düzenleme açıklandı | Haber Sitesi</title>
<meta property="og:title" content="Yeni düzenleme açıklandı">
<meta property="og:image" content="https://example.com/lead.jpg">
<meta property="article:published_time" content="2025-11-06T09:30:00+03:00">
<meta name="author" content="Ayşe Yılmaz">
<meta name="keywords" content="ekonomi, düzenleme">
</head>
<body>
<nav><a href="/">Ana Sayfa</a><a href="/gundem">Gündem</a></nav>
<article>
<h1>Yeni düzenleme açıklandı</h1>
<p>` + paragraph + `</p>
<p>` + paragraph + `</p>
<p>` + paragraph + `</p>
<p>` + paragraph + `</p>
</article>
<footer>Telif hakkı 2025 Haber Sitesi</footer>
</body>
</html>`
}

func fetcherReturning(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return html, nil
		},
	}
}

func TestAdapter_Method(t *testing.T) {
	t.Parallel()

	a := readability.NewAdapter(&mock.Fetcher{}, nil)

	assert.Equal(t, newsextract.MethodReadability, a.Method())
}

func TestAdapter_Attempt(t *testing.T) {
	t.Parallel()

	t.Run("extracts article text and page metadata", func(t *testing.T) {
		t.Parallel()

		a := readability.NewAdapter(fetcherReturning(newsPage()), goquery.NewMetaReader())

		raw, err := a.Attempt(context.Background(), "https://example.com/haber/1")

		require.NoError(t, err)
		assert.Contains(t, raw.Text, "basın toplantısında")
		assert.NotContains(t, raw.Text, "Ana Sayfa")
		assert.NotContains(t, raw.Text, "Telif hakkı")
		assert.Equal(t, []string{"Ayşe Yılmaz"}, raw.Authors)
		assert.Equal(t, []string{"ekonomi", "düzenleme"}, raw.Keywords)
		require.NotNil(t, raw.PublishDate)
		assert.Equal(t, "2025-11-06T09:30:00+03:00", *raw.PublishDate)
		require.NotNil(t, raw.Image)
		assert.Equal(t, "https://example.com/lead.jpg", *raw.Image)
		assert.NotEmpty(t, raw.Title)
		assert.Empty(t, raw.Categories)
	})

	t.Run("separates paragraphs with blank lines", func(t *testing.T) {
		t.Parallel()

		a := readability.NewAdapter(fetcherReturning(newsPage()), nil)

		raw, err := a.Attempt(context.Background(), "https://example.com/haber/1")

		require.NoError(t, err)
		assert.Contains(t, raw.Text, paragraph+"\n\n"+paragraph)
	})

	t.Run("passes the requested URL to the fetcher", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				gotURL = url
				return newsPage(), nil
			},
		}
		a := readability.NewAdapter(fetcher, nil)

		_, err := a.Attempt(context.Background(), "https://example.com/haber/1")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/haber/1", gotURL)
	})

	t.Run("returns transport failure when fetch fails", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("connection refused")
			},
		}
		a := readability.NewAdapter(fetcher, nil)

		_, err := a.Attempt(context.Background(), "https://example.com/haber/1")

		require.Error(t, err)
		assert.Equal(t, newsextract.ETRANSPORT, newsextract.ErrorCode(err))
		assert.Contains(t, newsextract.ErrorMessage(err), "connection refused")
	})

	t.Run("keeps coded transport failures intact", func(t *testing.T) {
		t.Parallel()

		fetchErr := newsextract.Errorf(newsextract.ETRANSPORT, "HTTP 404 for https://example.com/haber/1")
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", fetchErr
			},
		}
		a := readability.NewAdapter(fetcher, nil)

		_, err := a.Attempt(context.Background(), "https://example.com/haber/1")

		assert.Same(t, fetchErr, err)
	})

	t.Run("returns empty failure for page without content", func(t *testing.T) {
		t.Parallel()

		a := readability.NewAdapter(fetcherReturning(`<html><head><title>Galeri</title></head><body></body></html>`), nil)

		_, err := a.Attempt(context.Background(), "https://example.com/galeri/1")

		require.Error(t, err)
		assert.Equal(t, newsextract.EEMPTY, newsextract.ErrorCode(err))
	})

	t.Run("ignores metadata reader errors", func(t *testing.T) {
		t.Parallel()

		meta := &mock.MetaReader{
			ReadMetaFn: func(string) (*newsextract.PageMeta, error) {
				return nil, newsextract.Errorf(newsextract.EINVALID, "bad html")
			},
		}
		a := readability.NewAdapter(fetcherReturning(newsPage()), meta)

		raw, err := a.Attempt(context.Background(), "https://example.com/haber/1")

		require.NoError(t, err)
		assert.Contains(t, raw.Text, "basın toplantısında")
		assert.Empty(t, raw.Keywords)
	})
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	t.Run("collapses whitespace and separates lines", func(t *testing.T) {
		t.Parallel()

		got := readability.NormalizeText("  Birinci   satır \n\n\n\t İkinci satır\n")

		assert.Equal(t, "Birinci satır\n\nİkinci satır", got)
	})

	t.Run("returns empty for whitespace only", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, readability.NormalizeText(" \n\t\n "))
	})
}
