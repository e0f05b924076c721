// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds labelled PDF fixtures and reads them back page by
// page for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	pdflib "github.com/ledongthuc/pdf"
)

// Label returns the text printed on page n (1-indexed) of a Build fixture.
func Label(n int) string {
	return fmt.Sprintf("page-%03d", n)
}

// Build returns a PDF with the given number of pages; page n carries
// Label(n) as its only text.
func Build(tb testing.TB, pages int) []byte {
	tb.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 24)
	for n := 1; n <= pages; n++ {
		doc.AddPage()
		doc.Cell(60, 20, Label(n))
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		tb.Fatalf("building %d-page fixture: %v", pages, err)
	}
	return buf.Bytes()
}

// WriteFile writes a Build fixture to dir/name and returns its path.
func WriteFile(tb testing.TB, dir, name string, pages int) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(tb, pages), 0o644); err != nil {
		tb.Fatal(err)
	}
	return path
}

// PageTexts returns the plain text of every page of data, in order.
func PageTexts(tb testing.TB, data []byte) []string {
	tb.Helper()
	r, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		tb.Fatalf("reading PDF: %v", err)
	}
	texts := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			tb.Fatalf("reading page %d text: %v", i, err)
		}
		texts = append(texts, text)
	}
	return texts
}

// FileTexts is PageTexts for a file on disk.
func FileTexts(tb testing.TB, path string) []string {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatal(err)
	}
	return PageTexts(tb, data)
}
