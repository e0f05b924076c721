// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output persists chapter documents under the download directory.
package output

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/chapter-chef/internal/ledger"
	"github.com/pdiddy/chapter-chef/pkg/types"
)

// WriteError reports a chapter file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Document is a serializable chapter.
type Document interface {
	WriteTo(w io.Writer) (int64, error)
	Fingerprint() string
	PageCount() int
}

// Outcome tells whether Write touched the file.
type Outcome int

const (
	Written Outcome = iota
	Unchanged
)

func (o Outcome) String() string {
	if o == Unchanged {
		return "unchanged"
	}
	return "wrote"
}

// Prepare creates the download directory if it does not exist. The
// pipeline calls it once, before any write.
func Prepare(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: dir, Err: fmt.Errorf("creating download directory: %w", err)}
	}
	return nil
}

// ChapterPath returns {dir}/{book}-{chapter}.pdf. Titles are used as they
// are.
func ChapterPath(dir, book, chapter string) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s.pdf", book, chapter))
}

// Writer writes chapter documents. With a ledger it skips a file whose
// recorded fingerprint matches the document and whose bytes still hash to
// the recorded digest; serializing the same pages twice would otherwise
// produce different bytes, since each write stamps a new file ID and
// modification date.
type Writer struct {
	ledger *ledger.Ledger
	now    func() time.Time
}

// NewWriter returns a Writer. l may be nil, in which case every Write
// rewrites the file.
func NewWriter(l *ledger.Ledger) *Writer {
	return &Writer{ledger: l, now: time.Now}
}

// Write serializes doc to path, replacing any existing file. The parent
// directory must already exist; Write never creates directories.
func (w *Writer) Write(doc Document, path string) (Outcome, error) {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return Written, &WriteError{Path: path, Err: fmt.Errorf("parent directory: %w", err)}
	}
	if !info.IsDir() {
		return Written, &WriteError{Path: path, Err: fmt.Errorf("parent %s is not a directory", dir)}
	}

	if w.ledger != nil {
		rec, ok, err := w.ledger.Get(path)
		if err != nil {
			return Written, &WriteError{Path: path, Err: err}
		}
		if ok && rec.Fingerprint == doc.Fingerprint() {
			if sum, err := fileSHA256(path); err == nil && sum == rec.FileSHA256 {
				return Unchanged, nil
			}
		}
	}

	sum, err := writeAtomic(doc, path)
	if err != nil {
		return Written, &WriteError{Path: path, Err: err}
	}

	if w.ledger != nil {
		rec := types.ChapterRecord{
			Path:        path,
			Fingerprint: doc.Fingerprint(),
			FileSHA256:  sum,
			Pages:       doc.PageCount(),
			WrittenAt:   w.now(),
		}
		if err := w.ledger.Put(rec); err != nil {
			return Written, &WriteError{Path: path, Err: err}
		}
	}
	return Written, nil
}

// writeAtomic writes doc to a temporary file next to path and renames it
// into place. It returns the hex SHA-256 of the written bytes.
func writeAtomic(doc Document, path string) (string, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".chapter-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	h := sha256.New()
	_, writeErr := doc.WriteTo(io.MultiWriter(tmpFile, h))
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
