// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the single-shot HTTP read used to fetch
// source documents.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// StatusError reports a response other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Get performs one GET of url and returns the whole body. It sets the
// User-Agent and Accept headers when they are non-empty. There is no
// retry: any transport error or non-200 status is returned as is. The
// HTTP client handles redirect following.
func Get(ctx context.Context, client *http.Client, url, userAgent, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
