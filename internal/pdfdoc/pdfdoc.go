// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc holds paged source documents in memory and cuts chapter
// documents out of them. Pages are copied as PDF objects; their content
// streams are not re-rendered or re-compressed.
package pdfdoc

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// pdfcpu otherwise creates a config directory under the user's home.
	api.DisableConfigDir()
}

// ErrNoPages is returned when a document parses but holds no pages.
var ErrNoPages = errors.New("document has no pages")

// Source is a parsed source document. It is read-only once parsed and is
// shared by every chapter cut from it.
type Source struct {
	ctx    *model.Context
	digest string
	size   int
}

// Parse reads a PDF from memory.
func Parse(data []byte) (*Source, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	// No optimize pass: shared resources stay as the source has them.
	ctx, err := api.ReadAndValidate(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("parsing PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}
	if ctx.PageCount == 0 {
		return nil, ErrNoPages
	}

	sum := sha256.Sum256(data)
	return &Source{
		ctx:    ctx,
		digest: hex.EncodeToString(sum[:]),
		size:   len(data),
	}, nil
}

// PageCount returns the number of pages in the document.
func (s *Source) PageCount() int { return s.ctx.PageCount }

// Digest returns the hex SHA-256 of the bytes the document was parsed from.
func (s *Source) Digest() string { return s.digest }

// Size returns the length in bytes of the parsed input.
func (s *Source) Size() int { return s.size }

// Page returns page index (0-based) as a standalone single-page PDF.
func (s *Source) Page(index int) ([]byte, error) {
	if index < 0 || index >= s.PageCount() {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, s.PageCount())
	}
	r, err := api.ExtractPage(s.ctx, index+1)
	if err != nil {
		return nil, fmt.Errorf("extracting page %d: %w", index+1, err)
	}
	return io.ReadAll(r)
}
