// Package config provides configuration types, defaults, and persistence
// for the block engine demo.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveThemeColors updates the theme.colors section of the config file.
// This preserves comments and formatting in other sections by editing the
// document as a yaml.Node tree rather than round-tripping the whole struct.
func SaveThemeColors(configPath string, colors map[string]any) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	colorsNode, err := buildColorsNode(colors)
	if err != nil {
		return fmt.Errorf("building colors node: %w", err)
	}
	themeNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "colors"},
			colorsNode,
		},
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "theme"},
						themeNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			if !replaceThemeNode(root, themeNode) {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "theme"},
					themeNode,
				)
			}
		}
	}

	return writeDocument(configPath, &doc)
}

// replaceThemeNode replaces an existing "theme" mapping's "colors" key in
// place, preserving any sibling keys (e.g. preset, mode). Returns false if
// no "theme" key exists yet.
func replaceThemeNode(root *yaml.Node, themeNode *yaml.Node) bool {
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value != "theme" {
			continue
		}
		existing := root.Content[i+1]
		if existing.Kind != yaml.MappingNode {
			root.Content[i+1] = themeNode
			return true
		}
		for j := 0; j < len(existing.Content)-1; j += 2 {
			if existing.Content[j].Value == "colors" {
				existing.Content[j+1] = themeNode.Content[1]
				return true
			}
		}
		existing.Content = append(existing.Content, themeNode.Content...)
		return true
	}
	return false
}

func buildColorsNode(colors map[string]any) (*yaml.Node, error) {
	node := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: make([]*yaml.Node, 0, len(colors)*2),
	}
	for key, val := range colors {
		str, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("color %q: value must be a string, got %T", key, val)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: str},
		)
	}
	return node, nil
}

// writeDocument marshals doc and writes it atomically to path (write to a
// temp file in the same directory, then rename).
func writeDocument(path string, doc *yaml.Node) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".blockengine.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
