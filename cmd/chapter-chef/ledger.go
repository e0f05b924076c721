// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/chapter-chef/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "List the chapter files recorded by previous runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := ledger.Open(cfg.Ledger())
		if err != nil {
			return err
		}
		defer l.Close()

		recs, err := l.All()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, r := range recs {
			sum := r.FileSHA256
			if len(sum) > 12 {
				sum = sum[:12]
			}
			fmt.Fprintf(w, "%s\t%d pages\t%s\t%s\n", r.Path, r.Pages, sum, r.WrittenAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintf(w, "%d chapter files\n", len(recs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
}
