// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/chapter-chef/internal/ledger"
)

// fakeDoc writes its body followed by a per-write counter, mimicking a
// serializer that stamps every output differently.
type fakeDoc struct {
	body        string
	fingerprint string
	writes      int
	err         error
}

func (d *fakeDoc) WriteTo(w io.Writer) (int64, error) {
	if d.err != nil {
		return 0, d.err
	}
	d.writes++
	n, err := io.WriteString(w, d.body+"#"+string(rune('0'+d.writes)))
	return int64(n), err
}

func (d *fakeDoc) Fingerprint() string { return d.fingerprint }
func (d *fakeDoc) PageCount() int      { return 1 }

func TestChapterPath(t *testing.T) {
	assert.Equal(t, filepath.Join("downloads", "Guide-Intro.pdf"), ChapterPath("downloads", "Guide", "Intro"))
	assert.Equal(t, filepath.Join("d", "My Book-Part 1.pdf"), ChapterPath("d", "My Book", "Part 1"))
}

func TestPrepare(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "downloads")
	require.NoError(t, Prepare(dir))
	require.NoError(t, Prepare(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWrite_NoLedgerOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Guide-Intro.pdf")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	doc := &fakeDoc{body: "pdf", fingerprint: "f"}
	w := NewWriter(nil)

	outcome, err := w.Write(doc, path)
	require.NoError(t, err)
	assert.Equal(t, Written, outcome)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf#1", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWrite_MissingParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "Guide-Intro.pdf")
	doc := &fakeDoc{body: "pdf", fingerprint: "f"}

	_, err := NewWriter(nil).Write(doc, path)
	var werr *WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, path, werr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, 0, doc.writes)
}

func TestWrite_ParentIsFile(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, nil, 0o644))

	_, err := NewWriter(nil).Write(&fakeDoc{fingerprint: "f"}, filepath.Join(parent, "x.pdf"))
	var werr *WriteError
	assert.ErrorAs(t, err, &werr)
}

func TestWrite_SerializeErrorLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.pdf")

	_, err := NewWriter(nil).Write(&fakeDoc{err: errors.New("boom")}, path)
	var werr *WriteError
	require.ErrorAs(t, err, &werr)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWrite_LedgerKeepsUnchangedBytes(t *testing.T) {
	dir := t.TempDir()
	l, err := ledger.Open(filepath.Join(dir, ".ledger.db"))
	require.NoError(t, err)
	defer l.Close()

	path := filepath.Join(dir, "Guide-Intro.pdf")
	w := NewWriter(l)

	first := &fakeDoc{body: "pdf", fingerprint: "src:1-3"}
	outcome, err := w.Write(first, path)
	require.NoError(t, err)
	assert.Equal(t, Written, outcome)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// Same content from a fresh split: the file is left untouched.
	second := &fakeDoc{body: "pdf", fingerprint: "src:1-3", writes: 5}
	outcome, err = w.Write(second, path)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome)
	assert.Equal(t, 5, second.writes)
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	rec, ok, err := l.Get(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, rec.Pages)
}

func TestWrite_LedgerRewritesOnChange(t *testing.T) {
	dir := t.TempDir()
	l, err := ledger.Open(filepath.Join(dir, ".ledger.db"))
	require.NoError(t, err)
	defer l.Close()

	path := filepath.Join(dir, "Guide-Intro.pdf")
	w := NewWriter(l)

	_, err = w.Write(&fakeDoc{body: "v1", fingerprint: "src:1-3"}, path)
	require.NoError(t, err)

	t.Run("fingerprint changed", func(t *testing.T) {
		outcome, err := w.Write(&fakeDoc{body: "v2", fingerprint: "src:1-4"}, path)
		require.NoError(t, err)
		assert.Equal(t, Written, outcome)
		got, _ := os.ReadFile(path)
		assert.Equal(t, "v2#1", string(got))
	})

	t.Run("file edited on disk", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("tampered"), 0o644))
		outcome, err := w.Write(&fakeDoc{body: "v2", fingerprint: "src:1-4"}, path)
		require.NoError(t, err)
		assert.Equal(t, Written, outcome)
		got, _ := os.ReadFile(path)
		assert.Equal(t, "v2#1", string(got))
	})

	t.Run("file deleted", func(t *testing.T) {
		require.NoError(t, os.Remove(path))
		outcome, err := w.Write(&fakeDoc{body: "v2", fingerprint: "src:1-4"}, path)
		require.NoError(t, err)
		assert.Equal(t, Written, outcome)
		assert.FileExists(t, path)
	})
}
