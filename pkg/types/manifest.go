// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Chapter is one page range of a book. Bounds are 1-indexed and inclusive.
type Chapter struct {
	Title     string `json:"title" yaml:"title"`
	PageStart int    `json:"page_start" yaml:"page_start"`
	PageEnd   int    `json:"page_end" yaml:"page_end"`
}

// Pages returns the number of pages the chapter spans.
func (c Chapter) Pages() int {
	return c.PageEnd - c.PageStart + 1
}

// Topic is one book: a source document and the chapters cut from it.
type Topic struct {
	// Title is the book title.
	Title string `json:"book_title" yaml:"book_title"`

	// SourceURL locates the source PDF. It may be an HTTP(S) URL, a file://
	// URL or a local path.
	SourceURL string `json:"path_or_url" yaml:"path_or_url"`

	// Chapters are kept in manifest order.
	Chapters []Chapter `json:"chapters" yaml:"chapters"`
}

// ID returns the topic identifier: the title with every space replaced by
// an underscore. No further normalization is applied.
func (t Topic) ID() string {
	return strings.ReplaceAll(t.Title, " ", "_")
}

// ChapterID returns the composite identifier of a chapter under t.
func (t Topic) ChapterID(c Chapter) string {
	return t.Title + " " + c.Title
}
