// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chef runs the import: read the manifest, fetch each book, split
// it into chapter files, assemble and validate the channel tree, and hand
// the tree to the uploader.
//
// Every error is fatal. The run stops at the first failure, so either the
// whole channel is built or nothing is handed off.
package chef

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pdiddy/chapter-chef/internal/manifest"
	"github.com/pdiddy/chapter-chef/internal/output"
	"github.com/pdiddy/chapter-chef/internal/pdfdoc"
	"github.com/pdiddy/chapter-chef/internal/tree"
	"github.com/pdiddy/chapter-chef/pkg/types"
)

// Fetcher retrieves and parses one source document.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (*pdfdoc.Source, error)
}

// DocumentWriter persists one chapter document.
type DocumentWriter interface {
	Write(doc output.Document, path string) (output.Outcome, error)
}

// Handoff receives the validated tree. It is the boundary to the external
// uploader.
type Handoff interface {
	Handoff(ctx context.Context, ch *tree.Channel) error
}

// Result summarizes a successful run.
type Result struct {
	Channel   *tree.Channel
	Written   int
	Unchanged int
}

// Pipeline holds the collaborators of one run.
type Pipeline struct {
	cfg     types.ChefConfig
	fetcher Fetcher
	writer  DocumentWriter
	handoff Handoff
	log     *slog.Logger
	out     io.Writer
}

// New returns a Pipeline. Status lines go to out; diagnostics go to log.
func New(cfg types.ChefConfig, f Fetcher, w DocumentWriter, h Handoff, log *slog.Logger, out io.Writer) *Pipeline {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{cfg: cfg, fetcher: f, writer: w, handoff: h, log: log, out: out}
}

// Run executes the pipeline once. Topics and chapters are processed one
// at a time in manifest order.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := output.Prepare(p.cfg.DownloadDir); err != nil {
		return nil, err
	}

	topics, err := manifest.Read(p.cfg.ManifestPath)
	if err != nil {
		return nil, err
	}
	p.log.Debug("manifest loaded", "path", p.cfg.ManifestPath, "topics", len(topics))

	res := &Result{}
	written := make(map[tree.Key]string)
	for _, topic := range topics {
		start := time.Now()
		src, err := p.fetcher.Fetch(ctx, topic.SourceURL)
		if err != nil {
			return nil, fmt.Errorf("topic %q: %w", topic.Title, err)
		}
		p.log.Debug("source fetched", "topic", topic.Title, "pages", src.PageCount(),
			"bytes", src.Size(), "elapsed", time.Since(start))
		fmt.Fprintf(p.out, "fetched: %s (%d pages)\n", topic.Title, src.PageCount())

		for _, c := range topic.Chapters {
			doc, err := pdfdoc.Split(src, c.Title, c.PageStart, c.PageEnd)
			if err != nil {
				return nil, fmt.Errorf("topic %q: %w", topic.Title, err)
			}

			path := output.ChapterPath(p.cfg.DownloadDir, topic.Title, c.Title)
			outcome, err := p.writer.Write(doc, path)
			if err != nil {
				return nil, fmt.Errorf("topic %q chapter %q: %w", topic.Title, c.Title, err)
			}
			switch outcome {
			case output.Unchanged:
				res.Unchanged++
			default:
				res.Written++
			}
			fmt.Fprintf(p.out, "%s: %s (%d pages)\n", outcome, path, doc.PageCount())

			written[tree.Key{Topic: topic.ID(), Chapter: c.Title}] = path
		}
	}

	ch := tree.Assemble(p.cfg.Channel, p.cfg.License, topics, written)
	if err := tree.Validate(ch); err != nil {
		return nil, err
	}
	res.Channel = ch

	if err := p.handoff.Handoff(ctx, ch); err != nil {
		return nil, fmt.Errorf("handing off channel: %w", err)
	}

	stats := tree.Count(ch)
	fmt.Fprintf(p.out, "\nChannel summary: %d topics, %d documents (%d written, %d unchanged)\n",
		stats.Containers, stats.Leaves, res.Written, res.Unchanged)
	return res, nil
}

// Plan reads the manifest and assembles and validates the tree using the
// paths the chapter files would be written to. It fetches nothing and
// writes nothing, so identifier collisions surface before any download.
func Plan(cfg types.ChefConfig) (*tree.Channel, error) {
	topics, err := manifest.Read(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}

	written := make(map[tree.Key]string)
	for _, topic := range topics {
		for _, c := range topic.Chapters {
			written[tree.Key{Topic: topic.ID(), Chapter: c.Title}] = output.ChapterPath(cfg.DownloadDir, topic.Title, c.Title)
		}
	}

	ch := tree.Assemble(cfg.Channel, cfg.License, topics, written)
	if err := tree.Validate(ch); err != nil {
		return nil, err
	}
	return ch, nil
}
