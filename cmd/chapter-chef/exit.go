// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/pdiddy/chapter-chef/internal/fetch"
	"github.com/pdiddy/chapter-chef/internal/manifest"
	"github.com/pdiddy/chapter-chef/internal/output"
	"github.com/pdiddy/chapter-chef/internal/pdfdoc"
	"github.com/pdiddy/chapter-chef/internal/tree"
)

// Process exit statuses. Any failure without its own status exits 1.
const (
	exitOK         = 0
	exitFailure    = 1
	exitManifest   = 2
	exitFetch      = 3
	exitPageRange  = 4
	exitWrite      = 5
	exitValidation = 6
)

func exitCode(err error) int {
	var (
		merr *manifest.Error
		ferr *fetch.Error
		rerr *pdfdoc.PageRangeError
		werr *output.WriteError
		verr *tree.ValidationError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &merr):
		return exitManifest
	case errors.As(err, &ferr):
		return exitFetch
	case errors.As(err, &rerr):
		return exitPageRange
	case errors.As(err, &werr):
		return exitWrite
	case errors.As(err, &verr):
		return exitValidation
	default:
		return exitFailure
	}
}
