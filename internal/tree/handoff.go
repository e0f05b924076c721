// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/chapter-chef/pkg/types"
)

const (
	kindTopic    = "topic"
	kindDocument = "document"
)

// Serialized form. Kinds use the uploader's names for the two cases.
type yamlNode struct {
	Kind     string     `yaml:"kind"`
	SourceID string     `yaml:"source_id"`
	Title    string     `yaml:"title"`
	File     string     `yaml:"file,omitempty"`
	License  string     `yaml:"license,omitempty"`
	Children []yamlNode `yaml:"children,omitempty"`
}

type yamlChannel struct {
	Channel  types.ChannelInfo `yaml:"channel"`
	Children []yamlNode        `yaml:"children"`
}

// Marshal encodes ch as YAML.
func Marshal(ch *Channel) ([]byte, error) {
	doc := yamlChannel{Channel: ch.Info, Children: toYAML(ch.Children)}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling channel: %w", err)
	}
	return data, nil
}

func toYAML(nodes []Node) []yamlNode {
	out := make([]yamlNode, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *Container:
			out = append(out, yamlNode{
				Kind:     kindTopic,
				SourceID: n.SourceID,
				Title:    n.Name,
				Children: toYAML(n.Children),
			})
		case *Leaf:
			out = append(out, yamlNode{
				Kind:     kindDocument,
				SourceID: n.SourceID,
				Title:    n.Name,
				File:     n.File,
				License:  n.License,
			})
		default:
			panic(fmt.Sprintf("tree: unexpected node type %T", n))
		}
	}
	return out
}

// Unmarshal decodes a tree written by Marshal.
func Unmarshal(data []byte) (*Channel, error) {
	var doc yamlChannel
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing channel: %w", err)
	}
	children, err := fromYAML(doc.Children)
	if err != nil {
		return nil, err
	}
	return &Channel{Info: doc.Channel, Children: children}, nil
}

func fromYAML(nodes []yamlNode) ([]Node, error) {
	var out []Node
	for _, yn := range nodes {
		switch yn.Kind {
		case kindTopic:
			children, err := fromYAML(yn.Children)
			if err != nil {
				return nil, err
			}
			out = append(out, &Container{SourceID: yn.SourceID, Name: yn.Title, Children: children})
		case kindDocument:
			if len(yn.Children) > 0 {
				return nil, fmt.Errorf("document %q has children", yn.SourceID)
			}
			out = append(out, &Leaf{SourceID: yn.SourceID, Name: yn.Title, File: yn.File, License: yn.License})
		default:
			return nil, fmt.Errorf("node %q: unknown kind %q", yn.SourceID, yn.Kind)
		}
	}
	return out, nil
}

// FileHandoff hands a validated tree to the external uploader by writing
// it as YAML to Path.
type FileHandoff struct {
	Path string
}

// Handoff writes ch to h.Path, replacing any previous tree.
func (h FileHandoff) Handoff(_ context.Context, ch *Channel) error {
	data, err := Marshal(ch)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(h.Path), 0o755); err != nil {
		return fmt.Errorf("creating handoff directory: %w", err)
	}
	tmp := h.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing handoff file: %w", err)
	}
	if err := os.Rename(tmp, h.Path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming handoff file: %w", err)
	}
	return nil
}
