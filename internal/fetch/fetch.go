// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves one source PDF per book and parses it.
//
// A failed fetch is fatal for the whole run. Skipping the book would
// publish a partial channel, and a partial channel is worse than none, so
// callers must not recover from Error.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pdiddy/chapter-chef/internal/httputil"
	"github.com/pdiddy/chapter-chef/internal/pdfdoc"
	"github.com/pdiddy/chapter-chef/pkg/types"
)

// Error reports a transport, read or parse failure for a source location.
type Error struct {
	Location string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Location, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// LocationType classifies a manifest path_or_url value.
type LocationType int

const (
	LocationUnknown LocationType = iota
	LocationHTTP
	LocationFile
)

func (t LocationType) String() string {
	switch t {
	case LocationHTTP:
		return "http"
	case LocationFile:
		return "file"
	default:
		return "unknown"
	}
}

// Classify determines how location is read and returns the URL or path to
// read it from. file:// URLs become plain paths.
func Classify(location string) (LocationType, string) {
	location = strings.TrimSpace(location)
	if location == "" {
		return LocationUnknown, ""
	}
	u, err := url.Parse(location)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return LocationHTTP, location
		case "file":
			return LocationFile, u.Path
		}
	}
	// Anything else, including Windows drive letters parsed as a scheme,
	// is treated as a local path.
	return LocationFile, location
}

// Fetcher reads source documents. It holds no mutable state.
type Fetcher struct {
	client *http.Client
	cfg    types.HTTPConfig
}

// New returns a Fetcher using client for HTTP locations. A nil client gets
// one built from cfg.Timeout (zero means no timeout).
func New(client *http.Client, cfg types.HTTPConfig) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Fetcher{client: client, cfg: cfg}
}

// Fetch reads location in one blocking call and parses it as a PDF.
func (f *Fetcher) Fetch(ctx context.Context, location string) (*pdfdoc.Source, error) {
	data, err := f.read(ctx, location)
	if err != nil {
		return nil, &Error{Location: location, Err: err}
	}
	src, err := pdfdoc.Parse(data)
	if err != nil {
		return nil, &Error{Location: location, Err: err}
	}
	return src, nil
}

func (f *Fetcher) read(ctx context.Context, location string) ([]byte, error) {
	typ, target := Classify(location)
	switch typ {
	case LocationHTTP:
		return httputil.Get(ctx, f.client, target, f.cfg.UserAgent, "application/pdf")
	case LocationFile:
		data, err := os.ReadFile(target)
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("empty source location")
	}
}
