// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ChapterRecord is the ledger entry for one written chapter file.
type ChapterRecord struct {
	// Path is the chapter PDF on disk.
	Path string `json:"path" yaml:"path"`

	// Fingerprint identifies the content that was written: the source
	// digest plus the page bounds.
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`

	// FileSHA256 is the hex digest of the bytes written to Path.
	FileSHA256 string `json:"file_sha256" yaml:"file_sha256"`

	// Pages is the page count of the written document.
	Pages int `json:"pages" yaml:"pages"`

	// WrittenAt is when the file was last written.
	WrittenAt time.Time `json:"written_at" yaml:"written_at"`
}
