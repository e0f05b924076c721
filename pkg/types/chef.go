// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LicensePublicDomain is the license tag attached to every chapter document
// unless the configuration overrides it.
const LicensePublicDomain = "Public Domain"

// HTTPConfig holds settings for the source fetch.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout; an
	// unresponsive source then stalls the run.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "chapter-chef/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ChannelInfo describes the channel that the assembled tree is uploaded as.
type ChannelInfo struct {
	// Title is the channel name shown on the content platform.
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// SourceID is the channel's unique identifier on the platform.
	SourceID string `json:"source_id" yaml:"source_id" mapstructure:"source_id"`

	// Domain names who provides the content (e.g. "globalcommunities.org/yslc").
	Domain string `json:"domain" yaml:"domain" mapstructure:"domain"`

	// Language is the channel language code.
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// Description is optional.
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	// Thumbnail is an optional local path or URL to an image.
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty" mapstructure:"thumbnail"`
}

// ChefConfig holds everything one import run needs. It replaces fixed
// module-level paths and channel constants so runs can be built in
// isolation.
type ChefConfig struct {
	HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`

	// ManifestPath is the JSON manifest describing books and chapters.
	ManifestPath string `json:"manifest" yaml:"manifest" mapstructure:"manifest"`

	// DownloadDir receives one PDF per chapter. It is created at startup.
	DownloadDir string `json:"download_dir" yaml:"download_dir" mapstructure:"download_dir"`

	// License is the tag attached to every chapter document.
	License string `json:"license" yaml:"license" mapstructure:"license"`

	// Channel is the metadata of the channel handed to the uploader.
	Channel ChannelInfo `json:"channel" yaml:"channel" mapstructure:"channel"`

	// LedgerPath is the SQLite ledger of written chapter files.
	// Empty means DownloadDir/.chapter-chef.db.
	LedgerPath string `json:"ledger_path,omitempty" yaml:"ledger_path,omitempty" mapstructure:"ledger_path"`

	// HandoffPath is where the validated tree is written for the uploader.
	// Empty means DownloadDir/channel.yaml.
	HandoffPath string `json:"handoff_path,omitempty" yaml:"handoff_path,omitempty" mapstructure:"handoff_path"`
}

// DefaultChefConfig returns the configuration of the Global Youth
// Communities import.
func DefaultChefConfig() ChefConfig {
	return ChefConfig{
		HTTPConfig: HTTPConfig{
			UserAgent: "chapter-chef/0.1",
		},
		ManifestPath: "page_structure.json",
		DownloadDir:  "downloads",
		License:      LicensePublicDomain,
		Channel: ChannelInfo{
			Title:    "Global Youth Communities",
			SourceID: "sushi-chef-global-youth-communities-en",
			Domain:   "globalcommunities.org/yslc",
			Language: "en",
		},
	}
}

// Validate reports every required field that is empty.
func (c ChefConfig) Validate() error {
	var missing []string
	for name, v := range map[string]string{
		"manifest":          c.ManifestPath,
		"download_dir":      c.DownloadDir,
		"license":           c.License,
		"channel.title":     c.Channel.Title,
		"channel.source_id": c.Channel.SourceID,
		"channel.domain":    c.Channel.Domain,
		"channel.language":  c.Channel.Language,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative, got %v", c.Timeout)
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return errors.New("missing required configuration: " + strings.Join(missing, ", "))
}

// Ledger returns the effective ledger path.
func (c ChefConfig) Ledger() string {
	if c.LedgerPath != "" {
		return c.LedgerPath
	}
	return filepath.Join(c.DownloadDir, ".chapter-chef.db")
}

// Handoff returns the effective handoff file path.
func (c ChefConfig) Handoff() string {
	if c.HandoffPath != "" {
		return c.HandoffPath
	}
	return filepath.Join(c.DownloadDir, "channel.yaml")
}
