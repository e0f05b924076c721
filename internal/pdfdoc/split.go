// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageRangeError reports chapter bounds that fall outside the source
// document or are reversed. It is fatal: the manifest must be fixed.
type PageRangeError struct {
	Chapter   string
	PageStart int
	PageEnd   int
	PageCount int
}

func (e *PageRangeError) Error() string {
	return fmt.Sprintf("chapter %q: page range %d-%d invalid for document of %d pages",
		e.Chapter, e.PageStart, e.PageEnd, e.PageCount)
}

// Chapter is a document holding a contiguous page range of a Source.
type Chapter struct {
	Title     string
	PageStart int
	PageEnd   int

	ctx         *model.Context
	fingerprint string
}

// Split copies pages pageStart..pageEnd (1-indexed, inclusive) of src into
// a new document, in source order. The bounds must satisfy
// 1 <= pageStart <= pageEnd <= src.PageCount().
func Split(src *Source, title string, pageStart, pageEnd int) (*Chapter, error) {
	if pageStart < 1 || pageEnd > src.PageCount() || pageStart > pageEnd {
		return nil, &PageRangeError{
			Chapter:   title,
			PageStart: pageStart,
			PageEnd:   pageEnd,
			PageCount: src.PageCount(),
		}
	}

	// Source indexes pageStart-1 .. pageEnd-1; pdfcpu numbers pages from 1.
	nrs := make([]int, 0, pageEnd-pageStart+1)
	for i := pageStart - 1; i <= pageEnd-1; i++ {
		nrs = append(nrs, i+1)
	}

	ctx, err := pdfcpu.ExtractPages(src.ctx, nrs, false)
	if err != nil {
		return nil, fmt.Errorf("chapter %q: extracting pages %d-%d: %w", title, pageStart, pageEnd, err)
	}
	// ExtractPages leaves the page count of the new context unset.
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("chapter %q: counting pages: %w", title, err)
	}
	if ctx.PageCount != len(nrs) {
		return nil, fmt.Errorf("chapter %q: extracted %d pages, want %d", title, ctx.PageCount, len(nrs))
	}

	return &Chapter{
		Title:       title,
		PageStart:   pageStart,
		PageEnd:     pageEnd,
		ctx:         ctx,
		fingerprint: fmt.Sprintf("%s:%d-%d", src.Digest(), pageStart, pageEnd),
	}, nil
}

// PageCount returns the number of pages in the chapter.
func (c *Chapter) PageCount() int { return c.ctx.PageCount }

// Fingerprint identifies the chapter content: the source digest and the
// page bounds. Equal fingerprints mean equal pages.
func (c *Chapter) Fingerprint() string { return c.fingerprint }

// WriteTo serializes the chapter as a PDF.
func (c *Chapter) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := api.WriteContext(c.ctx, cw); err != nil {
		return cw.n, fmt.Errorf("writing chapter %q: %w", c.Title, err)
	}
	return cw.n, nil
}

// Bytes serializes the chapter into memory.
func (c *Chapter) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
