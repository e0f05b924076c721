// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest loads the JSON manifest that lists books, their source
// PDFs and the page ranges of their chapters.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/chapter-chef/pkg/types"
)

// Error reports a manifest that is missing, unparseable, or lacks
// required keys.
type Error struct {
	Path    string
	Missing []string // key locations, e.g. "[1].chapters[0].page_end"
	Err     error
}

func (e *Error) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("manifest %s: missing required keys: %s", e.Path, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Pointer fields tell an absent (or null) key apart from a zero value.
type rawChapter struct {
	Title     *string `json:"title"`
	PageStart *int    `json:"page_start"`
	PageEnd   *int    `json:"page_end"`
}

var errNotArray = errors.New("parsing manifest: top level is not an array")

type rawTopic struct {
	BookTitle *string       `json:"book_title"`
	PathOrURL *string       `json:"path_or_url"`
	Chapters  *[]rawChapter `json:"chapters"`
}

// Read loads the manifest at path. Topics and chapters keep their file
// order. Only key presence is checked; page bounds are validated when the
// chapter is split.
func Read(path string) ([]types.Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("reading manifest: %w", err)}
	}
	return Parse(path, data)
}

// Parse decodes manifest bytes. path is only used in errors.
func Parse(path string, data []byte) ([]types.Topic, error) {
	var raw []rawTopic
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("parsing manifest: %w", err)}
	}
	if raw == nil {
		return nil, &Error{Path: path, Err: errNotArray}
	}

	var missing []string
	topics := make([]types.Topic, 0, len(raw))
	for i, rt := range raw {
		loc := fmt.Sprintf("[%d]", i)
		var t types.Topic
		if rt.BookTitle == nil {
			missing = append(missing, loc+".book_title")
		} else {
			t.Title = *rt.BookTitle
		}
		if rt.PathOrURL == nil {
			missing = append(missing, loc+".path_or_url")
		} else {
			t.SourceURL = *rt.PathOrURL
		}
		if rt.Chapters == nil {
			missing = append(missing, loc+".chapters")
		} else {
			for j, rc := range *rt.Chapters {
				cloc := fmt.Sprintf("%s.chapters[%d]", loc, j)
				var c types.Chapter
				if rc.Title == nil {
					missing = append(missing, cloc+".title")
				} else {
					c.Title = *rc.Title
				}
				if rc.PageStart == nil {
					missing = append(missing, cloc+".page_start")
				} else {
					c.PageStart = *rc.PageStart
				}
				if rc.PageEnd == nil {
					missing = append(missing, cloc+".page_end")
				} else {
					c.PageEnd = *rc.PageEnd
				}
				t.Chapters = append(t.Chapters, c)
			}
		}
		topics = append(topics, t)
	}

	if len(missing) > 0 {
		return nil, &Error{Path: path, Missing: missing}
	}
	return topics, nil
}
