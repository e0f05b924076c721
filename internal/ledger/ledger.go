// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records which chapter files were written from which
// content, so an unchanged re-run can leave them untouched.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/chapter-chef/pkg/types"
)

// Ledger is a SQLite table of ChapterRecords keyed by path.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating its parent
// directory when needed.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS chapters (
		path TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		file_sha256 TEXT NOT NULL,
		pages INTEGER NOT NULL,
		written_at TEXT NOT NULL
	)`)
	return err
}

// Get returns the record for path. ok is false when there is none.
func (l *Ledger) Get(path string) (rec types.ChapterRecord, ok bool, err error) {
	var writtenAt string
	err = l.db.QueryRow(
		`SELECT path, fingerprint, file_sha256, pages, written_at FROM chapters WHERE path = ?`, path,
	).Scan(&rec.Path, &rec.Fingerprint, &rec.FileSHA256, &rec.Pages, &writtenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ChapterRecord{}, false, nil
	}
	if err != nil {
		return types.ChapterRecord{}, false, fmt.Errorf("reading ledger entry %s: %w", path, err)
	}
	if t, parseErr := time.Parse(time.RFC3339Nano, writtenAt); parseErr == nil {
		rec.WrittenAt = t
	}
	return rec, true, nil
}

// Put inserts or replaces the record for rec.Path.
func (l *Ledger) Put(rec types.ChapterRecord) error {
	_, err := l.db.Exec(
		`INSERT OR REPLACE INTO chapters (path, fingerprint, file_sha256, pages, written_at) VALUES (?, ?, ?, ?, ?)`,
		rec.Path, rec.Fingerprint, rec.FileSHA256, rec.Pages, rec.WrittenAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing ledger entry %s: %w", rec.Path, err)
	}
	return nil
}

// All returns every record ordered by path.
func (l *Ledger) All() ([]types.ChapterRecord, error) {
	rows, err := l.db.Query(`SELECT path, fingerprint, file_sha256, pages, written_at FROM chapters ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing ledger: %w", err)
	}
	defer rows.Close()

	var recs []types.ChapterRecord
	for rows.Next() {
		var rec types.ChapterRecord
		var writtenAt string
		if err := rows.Scan(&rec.Path, &rec.Fingerprint, &rec.FileSHA256, &rec.Pages, &writtenAt); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, writtenAt); parseErr == nil {
			rec.WrittenAt = t
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
