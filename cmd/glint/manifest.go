package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes the blocks of a page beyond what its data-*
// attributes say.
type Manifest struct {
	Blocks      map[string]ManifestBlock `yaml:"blocks"`
	Stylesheets []string                 `yaml:"stylesheets"`
}

// ManifestBlock configures a single block. Values set here take precedence
// over the element's attributes.
type ManifestBlock struct {
	Block   string         `yaml:"block"`
	Browser bool           `yaml:"browser"`
	Options map[string]any `yaml:"options"`
}

// LoadManifest reads a YAML manifest. An empty path yields an empty
// manifest.
func LoadManifest(path string) (*Manifest, error) {
	m := &Manifest{Blocks: map[string]ManifestBlock{}}
	if path == "" {
		return m, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	if err = yaml.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if m.Blocks == nil {
		m.Blocks = map[string]ManifestBlock{}
	}
	return m, nil
}
