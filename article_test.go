package newsextract_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/newsextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccepts(t *testing.T) {
	t.Parallel()

	t.Run("accepts text of exactly the minimum length", func(t *testing.T) {
		t.Parallel()

		assert.True(t, newsextract.Accepts(strings.Repeat("a", 100), 100))
	})

	t.Run("rejects text one character short", func(t *testing.T) {
		t.Parallel()

		assert.False(t, newsextract.Accepts(strings.Repeat("a", 99), 100))
	})

	t.Run("rejects empty text even with zero minimum", func(t *testing.T) {
		t.Parallel()

		assert.False(t, newsextract.Accepts("", 0))
	})

	t.Run("counts characters rather than bytes", func(t *testing.T) {
		t.Parallel()

		// Each "ğ" is two bytes in UTF-8.
		text := strings.Repeat("ğ", 60)

		assert.False(t, newsextract.Accepts(text, 100))
		assert.True(t, newsextract.Accepts(text, 60))
	})
}

func TestNewArticle(t *testing.T) {
	t.Parallel()

	extractedAt := time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC)

	t.Run("derives text length from text", func(t *testing.T) {
		t.Parallel()

		raw := &newsextract.RawExtraction{Title: "Başlık", Text: "Türkçe haber metni"}

		a := newsextract.NewArticle("https://example.com/haber", newsextract.MethodReadability, raw, extractedAt)

		assert.Equal(t, len([]rune(a.Text)), a.TextLength)
		assert.Equal(t, 18, a.TextLength)
		assert.Equal(t, newsextract.MethodReadability, a.Method)
		assert.Equal(t, extractedAt, a.ExtractedAt)
	})

	t.Run("never leaves authors or keywords nil", func(t *testing.T) {
		t.Parallel()

		raw := &newsextract.RawExtraction{Text: "body"}

		a := newsextract.NewArticle("https://example.com", newsextract.MethodTrafilatura, raw, extractedAt)

		assert.NotNil(t, a.Authors)
		assert.NotNil(t, a.Keywords)
		assert.Nil(t, a.Categories)
	})

	t.Run("copies slices so later changes to the raw record do not leak", func(t *testing.T) {
		t.Parallel()

		raw := &newsextract.RawExtraction{
			Text:       "body",
			Authors:    []string{"Ayşe Yılmaz"},
			Categories: []string{"gündem"},
		}

		a := newsextract.NewArticle("https://example.com", newsextract.MethodTrafilatura, raw, extractedAt)
		raw.Authors[0] = "changed"
		raw.Categories[0] = "changed"

		assert.Equal(t, []string{"Ayşe Yılmaz"}, a.Authors)
		assert.Equal(t, []string{"gündem"}, a.Categories)
	})

	t.Run("encodes missing optional fields as null", func(t *testing.T) {
		t.Parallel()

		raw := &newsextract.RawExtraction{Title: "T", Text: "body"}
		a := newsextract.NewArticle("https://example.com", newsextract.MethodReadability, raw, extractedAt)

		b, err := json.Marshal(a)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Nil(t, got["date"])
		assert.Nil(t, got["image"])
		assert.Nil(t, got["description"])
		assert.Equal(t, []any{}, got["authors"])
		assert.Equal(t, []any{}, got["keywords"])
		assert.NotContains(t, got, "categories")
		assert.Equal(t, "readability", got["method"])
		assert.Equal(t, float64(4), got["text_length"])
	})
}

func TestBatchResult(t *testing.T) {
	t.Parallel()

	article := &newsextract.Article{URL: "https://a.example", Method: newsextract.MethodReadability}
	b := &newsextract.BatchResult{
		URLs: []string{"https://a.example", "https://b.example"},
		Results: map[string]*newsextract.ExtractionResult{
			"https://a.example": {Article: article},
			"https://b.example": {},
		},
	}

	t.Run("reports distinct URL count", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 2, b.Len())
	})

	t.Run("looks up results by URL", func(t *testing.T) {
		t.Parallel()

		assert.True(t, b.Get("https://a.example").OK())
		assert.False(t, b.Get("https://b.example").OK())
		assert.Nil(t, b.Get("https://c.example"))
	})

	t.Run("lists accepted articles in submission order", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []*newsextract.Article{article}, b.Articles())
	})

	t.Run("nil batch is empty", func(t *testing.T) {
		t.Parallel()

		var nb *newsextract.BatchResult
		assert.Equal(t, 0, nb.Len())
		assert.Nil(t, nb.Get("https://a.example"))
		assert.Nil(t, nb.Articles())
	})
}
