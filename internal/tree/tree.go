// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tree builds the channel tree handed to the uploader: one
// Container per book and one Leaf per chapter file.
package tree

import (
	"fmt"

	"github.com/pdiddy/chapter-chef/pkg/types"
)

// Node is either a *Container or a *Leaf. The set is closed; type
// switches over Node handle exactly those two cases.
type Node interface {
	ID() string
	Title() string
	isNode()
}

// Container groups the chapters of one book.
type Container struct {
	SourceID string
	Name     string
	Children []Node
}

func (c *Container) ID() string    { return c.SourceID }
func (c *Container) Title() string { return c.Name }
func (*Container) isNode()         {}

// Add attaches n as the last child.
func (c *Container) Add(n Node) { c.Children = append(c.Children, n) }

// Leaf is one chapter document.
type Leaf struct {
	SourceID string
	Name     string
	File     string // local path of the chapter PDF
	License  string
}

func (l *Leaf) ID() string    { return l.SourceID }
func (l *Leaf) Title() string { return l.Name }
func (*Leaf) isNode()         {}

// Channel is the root of the tree.
type Channel struct {
	Info     types.ChannelInfo
	Children []Node
}

// Add attaches n as the last child of the root.
func (ch *Channel) Add(n Node) { ch.Children = append(ch.Children, n) }

// Key locates a written chapter file: the topic identifier and the
// chapter title.
type Key struct {
	Topic   string
	Chapter string
}

// Assemble builds the tree for topics in manifest order. written maps each
// chapter to its file; a chapter without an entry gets a Leaf with no file,
// which Validate reports.
func Assemble(info types.ChannelInfo, license string, topics []types.Topic, written map[Key]string) *Channel {
	ch := &Channel{Info: info}
	for _, t := range topics {
		c := &Container{SourceID: t.ID(), Name: t.Title}
		for _, chapter := range t.Chapters {
			c.Add(&Leaf{
				SourceID: t.ChapterID(chapter),
				Name:     chapter.Title,
				File:     written[Key{Topic: t.ID(), Chapter: chapter.Title}],
				License:  license,
			})
		}
		ch.Add(c)
	}
	return ch
}

// Walk visits every node depth-first in child order. loc is the node's
// position as child indexes, e.g. "[0][2]". A non-nil error from fn stops
// the walk and is returned.
func Walk(ch *Channel, fn func(loc string, n Node) error) error {
	return walk(ch.Children, "", fn)
}

func walk(nodes []Node, prefix string, fn func(string, Node) error) error {
	for i, n := range nodes {
		loc := fmt.Sprintf("%s[%d]", prefix, i)
		if err := fn(loc, n); err != nil {
			return err
		}
		switch n := n.(type) {
		case *Container:
			if err := walk(n.Children, loc, fn); err != nil {
				return err
			}
		case *Leaf:
		default:
			panic(fmt.Sprintf("tree: unexpected node type %T", n))
		}
	}
	return nil
}

// Stats counts the nodes under the root.
type Stats struct {
	Containers int
	Leaves     int
}

// Count returns node counts for ch.
func Count(ch *Channel) Stats {
	var s Stats
	Walk(ch, func(_ string, n Node) error {
		switch n.(type) {
		case *Container:
			s.Containers++
		case *Leaf:
			s.Leaves++
		}
		return nil
	})
	return s
}
