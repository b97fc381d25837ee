// Package fs provides file-based output for backlog runs.
package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/newsextract"
)

// Ensure JSONLWriter implements newsextract.BacklogWriter at compile time.
var _ newsextract.BacklogWriter = (*JSONLWriter)(nil)

// JSONLWriter writes backlog entries as JSON Lines with atomic update
// semantics. Entries go to path.tmp and are moved to path on Commit, so a
// crashed or aborted run never leaves a truncated output file behind.
type JSONLWriter struct {
	path string
	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
}

// NewJSONLWriter creates a new JSONLWriter targeting path.
// The file is created on the first WriteEntry.
func NewJSONLWriter(path string) *JSONLWriter {
	return &JSONLWriter{path: path}
}

func (w *JSONLWriter) tempPath() string {
	return w.path + ".tmp"
}

// open creates the parent directory and the temporary file.
func (w *JSONLWriter) open() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}
	f, err := os.Create(w.tempPath())
	if err != nil {
		return err
	}
	w.file = f
	w.buf = bufio.NewWriter(f)
	w.enc = json.NewEncoder(w.buf)
	w.enc.SetEscapeHTML(false)
	return nil
}

// WriteEntry appends entry as one JSON line to the temporary file.
func (w *JSONLWriter) WriteEntry(ctx context.Context, entry *newsextract.BacklogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.file == nil {
		if err := w.open(); err != nil {
			return fmt.Errorf("open output: %w", err)
		}
	}
	return w.enc.Encode(entry)
}

// Commit flushes the temporary file and renames it over path.
// Committing without any entries produces an empty file.
func (w *JSONLWriter) Commit() error {
	if w.file == nil {
		if err := w.open(); err != nil {
			return fmt.Errorf("open output: %w", err)
		}
	}
	if err := w.close(); err != nil {
		return err
	}
	return os.Rename(w.tempPath(), w.path)
}

// Abort discards the temporary file. An existing file at path is left untouched.
func (w *JSONLWriter) Abort() error {
	closeErr := w.close()
	if err := os.Remove(w.tempPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return closeErr
}

func (w *JSONLWriter) close() error {
	if w.file == nil {
		return nil
	}
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	w.file, w.buf, w.enc = nil, nil, nil
	return errors.Join(flushErr, closeErr)
}
