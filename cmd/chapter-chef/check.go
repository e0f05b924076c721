// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/chapter-chef/internal/chef"
	"github.com/pdiddy/chapter-chef/internal/tree"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the manifest and print the channel tree without downloading",
	Long: `Check reads the manifest, builds the channel tree with the paths the
chapter files would be written to, and validates it. Nothing is downloaded
or written. Page ranges are checked against the sources only by run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ch, err := chef.Plan(cfg)
		if err != nil {
			return err
		}
		printTree(cmd.OutOrStdout(), ch)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func printTree(w io.Writer, ch *tree.Channel) {
	fmt.Fprintf(w, "%s (%s)\n", ch.Info.Title, ch.Info.SourceID)
	tree.Walk(ch, func(loc string, n tree.Node) error {
		indent := strings.Repeat("  ", strings.Count(loc, "["))
		switch n := n.(type) {
		case *tree.Container:
			fmt.Fprintf(w, "%s%s [%s]\n", indent, n.Title(), n.ID())
		case *tree.Leaf:
			fmt.Fprintf(w, "%s%s -> %s\n", indent, n.ID(), n.File)
		}
		return nil
	})
	stats := tree.Count(ch)
	fmt.Fprintf(w, "\n%d topics, %d documents\n", stats.Containers, stats.Leaves)
}
