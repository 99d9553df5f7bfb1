// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

// TermFile is the on-disk representation of a search vocabulary. A run
// normally uses the built-in vocabulary; a term file overrides it
// without a rebuild.
type TermFile struct {
	Terms           []string `yaml:"terms"`
	Classifications []string `yaml:"classifications,omitempty"`
}

// LoadTermFile reads a vocabulary from a YAML file. At least one search
// term is required; classifications may be empty.
func LoadTermFile(path string) (TermFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TermFile{}, fmt.Errorf("reading term file: %w", err)
	}

	var tf TermFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return TermFile{}, fmt.Errorf("parsing term file %s: %w", path, err)
	}
	if len(tf.Terms) == 0 {
		return TermFile{}, fmt.Errorf("term file %s contains no search terms", path)
	}
	return tf, nil
}

// WriteTermFile saves a vocabulary to a YAML file, typically to seed a
// custom vocabulary from the defaults.
func WriteTermFile(path string, terms, classifications []string) error {
	tf := TermFile{Terms: terms, Classifications: classifications}
	data, err := yaml.Marshal(tf)
	if err != nil {
		return fmt.Errorf("marshaling term file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyTermFile overrides the config vocabulary with the file contents.
func ApplyTermFile(cfg *types.PipelineConfig, tf TermFile) {
	cfg.Terms = tf.Terms
	if len(tf.Classifications) > 0 {
		cfg.Classifications = tf.Classifications
	}
}
