// Package config provides configuration loading and structs for a Musubi graph store.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for a graph store. It is fixed once a store
// is built from it and persisted alongside the graph so a reload reproduces
// the same embedding dimensionality and extraction behavior.
type Config struct {
	// EmbeddingDim is the length of every embedding vector in the store.
	EmbeddingDim int `yaml:"embedding_dim" json:"embedding_dim"`
	// Seed controls deterministic embedding generation. The same text with the
	// same seed and dimension always produces the same vector.
	Seed int64 `yaml:"seed" json:"seed"`
	// DedupTexts makes Build skip documents whose exact text already has a
	// node instead of creating a duplicate node.
	DedupTexts bool             `yaml:"dedup_texts" json:"dedup_texts"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction"`
}

// ExtractionConfig holds keyword extraction settings.
type ExtractionConfig struct {
	// MaxKeywords caps the keywords taken per document. Zero selects the
	// default; a negative value means unlimited.
	MaxKeywords int `yaml:"max_keywords" json:"max_keywords"`
	// MinTokenLen drops tokens shorter than this many runes.
	MinTokenLen int `yaml:"min_token_len" json:"min_token_len"`
	// Stopwords are normalized tokens to discard. When nil, the default
	// English list is applied.
	Stopwords []string `yaml:"stopwords" json:"stopwords"`
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable for building a store.
func (c *Config) Validate() error {
	if c.EmbeddingDim <= 0 {
		return fmt.Errorf("embedding_dim must be positive, got %d", c.EmbeddingDim)
	}
	if c.Extraction.MinTokenLen < 0 {
		return fmt.Errorf("min_token_len must be non-negative, got %d", c.Extraction.MinTokenLen)
	}
	return nil
}
