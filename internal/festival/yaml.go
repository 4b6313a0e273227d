package festival

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed festivals.yaml
var defaultData []byte

// Default builds a fresh registry from the bundled festival data.
func Default() (*Registry, error) {
	reg, err := ParseYAML(defaultData)
	if err != nil {
		return nil, fmt.Errorf("festival: bundled data: %w", err)
	}
	return reg, nil
}

// MustDefault is Default for program start-up, where bad bundled data is a
// build defect.
func MustDefault() *Registry {
	reg, err := Default()
	if err != nil {
		panic(err)
	}
	return reg
}

// ParseYAML decodes a registry document: a mapping from festival key to a
// list of records. Document order is kept for records sharing a key.
func ParseYAML(data []byte) (*Registry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("festival: registry payload is empty")
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("festival: decode registry: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("festival: registry payload is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("festival: registry must be a mapping of key to festivals (line %d)", root.Line)
	}
	groups := make([]Group, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		var records []Record
		if err := valueNode.Decode(&records); err != nil {
			return nil, fmt.Errorf("festival: %s (line %d): %w", keyNode.Value, keyNode.Line, err)
		}
		groups = append(groups, Group{Key: Key(keyNode.Value), Records: records})
	}
	return New(groups...)
}

// LoadYAML reads a registry document from r.
func LoadYAML(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("festival: read registry: %w", err)
	}
	return ParseYAML(data)
}

// LoadFile reads a registry document from disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("festival: read %s: %w", path, err)
	}
	reg, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("festival: %s: %w", filepath.Base(path), err)
	}
	return reg, nil
}

// LoadOrDefault reads path, or returns the bundled registry when path is
// empty.
func LoadOrDefault(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
