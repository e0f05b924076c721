// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"fmt"
	"strings"
)

// ValidationError lists every structural defect found in a channel tree.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid channel (%d problems): %s", len(e.Violations), strings.Join(e.Violations, "; "))
}

// Validate checks the whole tree in one pass: every node has an identifier
// and title that are not blank, identifiers are unique across the tree, the root
// has at least one child, and every Leaf has a file and a license. All
// violations are reported together.
func Validate(ch *Channel) error {
	var v []string

	if strings.TrimSpace(ch.Info.SourceID) == "" {
		v = append(v, "channel: empty source_id")
	}
	if strings.TrimSpace(ch.Info.Title) == "" {
		v = append(v, "channel: empty title")
	}
	if len(ch.Children) == 0 {
		v = append(v, "channel: no children")
	}

	seen := make(map[string]string)
	Walk(ch, func(loc string, n Node) error {
		kind := "container"
		if _, ok := n.(*Leaf); ok {
			kind = "leaf"
		}
		where := fmt.Sprintf("%s %s", kind, loc)

		if strings.TrimSpace(n.ID()) == "" {
			v = append(v, where+": empty identifier")
		} else if first, dup := seen[n.ID()]; dup {
			v = append(v, fmt.Sprintf("%s: duplicate identifier %q (first at %s)", where, n.ID(), first))
		} else {
			seen[n.ID()] = where
		}
		if strings.TrimSpace(n.Title()) == "" {
			v = append(v, where+": empty title")
		}

		if leaf, ok := n.(*Leaf); ok {
			if leaf.File == "" {
				v = append(v, fmt.Sprintf("%s (%q): no file", where, leaf.SourceID))
			}
			if leaf.License == "" {
				v = append(v, fmt.Sprintf("%s (%q): no license", where, leaf.SourceID))
			}
		}
		return nil
	})

	if len(v) > 0 {
		return &ValidationError{Violations: v}
	}
	return nil
}
