// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/chapter-chef/internal/chef"
	"github.com/pdiddy/chapter-chef/internal/fetch"
	"github.com/pdiddy/chapter-chef/internal/ledger"
	"github.com/pdiddy/chapter-chef/internal/output"
	"github.com/pdiddy/chapter-chef/internal/tree"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Import every book in the manifest and hand off the channel tree",
	Long: `Run downloads each book, writes one PDF per chapter into the download
directory, validates the channel tree and writes it for the uploader.
Chapter files whose content has not changed since the last run are left
untouched.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(viper.GetBool("verbose"))

	l, err := ledger.Open(cfg.Ledger())
	if err != nil {
		return err
	}
	defer l.Close()

	p := chef.New(cfg,
		fetch.New(nil, cfg.HTTPConfig),
		output.NewWriter(l),
		tree.FileHandoff{Path: cfg.Handoff()},
		log, cmd.OutOrStdout())

	res, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}
	log.Info("channel handed off", "path", cfg.Handoff(), "written", res.Written, "unchanged", res.Unchanged)
	return nil
}
