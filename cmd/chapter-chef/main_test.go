// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CHAPTER_CHEF_DOWNLOAD_DIR", "/tmp/chapters")
	t.Setenv("CHAPTER_CHEF_CHANNEL_LANGUAGE", "fr")
	t.Setenv("CHAPTER_CHEF_HTTP_TIMEOUT", "30s")
	initConfig()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/chapters", cfg.DownloadDir)
	assert.Equal(t, "fr", cfg.Channel.Language)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "page_structure.json", cfg.ManifestPath)
	assert.Equal(t, "Public Domain", cfg.License)
	assert.Equal(t, filepath.Join("/tmp/chapters", "channel.yaml"), cfg.Handoff())
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()

	assert.Empty(t, loadDotenv(filepath.Join(dir, "missing.env")))

	empty := filepath.Join(dir, "empty.env")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	assert.Empty(t, loadDotenv(empty))

	t.Setenv("CHAPTER_CHEF_LICENSE", "CC BY")
	t.Setenv("CHAPTER_CHEF_MANIFEST", "")
	os.Unsetenv("CHAPTER_CHEF_MANIFEST")
	withKeys := filepath.Join(dir, "keys.env")
	require.NoError(t, os.WriteFile(withKeys, []byte("CHAPTER_CHEF_MANIFEST=books.json\nCHAPTER_CHEF_LICENSE=Public Domain\n"), 0o644))
	assert.Equal(t, []string{"CHAPTER_CHEF_MANIFEST"}, loadDotenv(withKeys))
	assert.Equal(t, "books.json", os.Getenv("CHAPTER_CHEF_MANIFEST"))
	assert.Equal(t, "CC BY", os.Getenv("CHAPTER_CHEF_LICENSE"))
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "page_structure.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`[{"book_title":"Guide","path_or_url":"http://x/a.pdf","chapters":[
	  {"title":"Intro","page_start":1,"page_end":3},
	  {"title":"Overview","page_start":4,"page_end":10}]}]`), 0o644))
	downloads := filepath.Join(dir, "downloads")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"check", "--manifest", manifestPath, "--download-dir", downloads})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	got := out.String()
	assert.Contains(t, got, "Global Youth Communities (sushi-chef-global-youth-communities-en)")
	assert.Contains(t, got, "  Guide [Guide]\n")
	assert.Contains(t, got, "    Guide Intro -> "+filepath.Join(downloads, "Guide-Intro.pdf"))
	assert.Contains(t, got, "    Guide Overview -> "+filepath.Join(downloads, "Guide-Overview.pdf"))
	assert.Contains(t, got, "1 topics, 2 documents")
	assert.NoDirExists(t, downloads)
}
