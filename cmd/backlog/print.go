package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/newsextract"
)

const previewLength = 280

// WriteJSON writes entry as a single JSON line.
func WriteJSON(w io.Writer, entry *newsextract.BacklogEntry) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(entry)
}

// WritePretty writes a human-readable report of entry.
func WritePretty(w io.Writer, entry *newsextract.BacklogEntry) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", 100) + "\n")
	fmt.Fprintf(&b, "[%d] %s (%s)\n", entry.ArticleID, entry.Title, entry.Domain)
	fmt.Fprintf(&b, "URL: %s\n", entry.SourceURL)
	fmt.Fprintf(&b, "Canonical: %s\n", entry.CanonicalURL)

	if a := entry.Extraction; a != nil {
		fmt.Fprintf(&b, "Method: %s\n", a.Method)
		fmt.Fprintf(&b, "Text length: %d\n", a.TextLength)
		keywords := "N/A"
		if len(a.Keywords) > 0 {
			keywords = strings.Join(a.Keywords, ", ")
		}
		fmt.Fprintf(&b, "Keywords: %s\n", keywords)
		b.WriteString(strings.Repeat("-", 100) + "\n")
		b.WriteString(Preview(a.Text, previewLength) + "\n")
	} else {
		b.WriteString("Extraction: ❌\n")
		if entry.Error != nil {
			fmt.Fprintf(&b, "Error: %s\n", *entry.Error)
		}
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Preview returns the first n characters of text. An ellipsis follows
// when the preview fills all n characters.
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) < n {
		return text
	}
	return string(runes[:n]) + "..."
}
