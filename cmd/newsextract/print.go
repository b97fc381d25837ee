package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fwojciec/newsextract"
	"github.com/mattn/go-runewidth"
)

const (
	previewLength = 300
	maxKeywords   = 5
)

// WriteJSON writes article as a single JSON line.
func WriteJSON(w io.Writer, article *newsextract.Article) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(article)
}

// WritePretty writes a human-readable summary of article.
func WritePretty(w io.Writer, article *newsextract.Article) error {
	keywords := article.Keywords
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 80) + "\n")
	fmt.Fprintf(&b, "URL: %s\n", article.URL)
	fmt.Fprintf(&b, "Method: %s\n", article.Method)
	fmt.Fprintf(&b, "Title: %s\n", article.Title)
	fmt.Fprintf(&b, "Authors: %s\n", joinOrNA(article.Authors))
	fmt.Fprintf(&b, "Date: %s\n", valueOrNA(article.PublishDate))
	fmt.Fprintf(&b, "Keywords: %s\n", joinOrNA(keywords))
	fmt.Fprintf(&b, "Text length: %d chars\n", article.TextLength)
	b.WriteString(strings.Repeat("-", 80) + "\n")
	b.WriteString(Preview(article.Text, previewLength) + "\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Preview returns the first n characters of text followed by an ellipsis.
// Empty text yields an empty preview.
func Preview(text string, n int) string {
	if text == "" {
		return ""
	}
	if runes := []rune(text); len(runes) > n {
		text = string(runes[:n])
	}
	return text + "..."
}

// WriteStats writes the batch statistics block with aligned labels.
func WriteStats(w io.Writer, stats newsextract.Stats) error {
	rows := [][2]string{
		{"Total URLs:", fmt.Sprint(stats.Total)},
		{"Successful:", fmt.Sprint(stats.Successful)},
		{"Failed:", fmt.Sprint(stats.Failed)},
		{"Success rate:", fmt.Sprintf("%.1f%%", stats.SuccessRate)},
	}
	methods := slices.Sorted(maps.Keys(stats.Methods))
	for _, m := range methods {
		rows = append(rows, [2]string{"  - " + string(m) + ":", fmt.Sprint(stats.Methods[m])})
	}

	width := 0
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row[0]))
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 80) + "\n")
	b.WriteString("STATISTICS\n")
	b.WriteString(strings.Repeat("=", 80) + "\n")
	for i, row := range rows {
		if i == 4 {
			b.WriteString("Methods used:\n")
		}
		fmt.Fprintf(&b, "%s %s\n", runewidth.FillRight(row[0], width), row[1])
	}
	if len(methods) == 0 {
		b.WriteString("Methods used: none\n")
	}
	b.WriteString(strings.Repeat("=", 80) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func joinOrNA(values []string) string {
	if len(values) == 0 {
		return "N/A"
	}
	return strings.Join(values, ", ")
}

func valueOrNA(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	return *v
}
