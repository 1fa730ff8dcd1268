// Package config provides configuration loading and management for relgraph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete relgraph run configuration.
type Config struct {
	Ontology string        `yaml:"ontology"`
	Sources  SourcesConfig `yaml:"sources"`
	Export   ExportConfig  `yaml:"export"`
	NATS     NATSConfig    `yaml:"nats"`
	Watch    WatchConfig   `yaml:"watch"`
}

// SourcesConfig configures where tabular sources are discovered.
type SourcesConfig struct {
	// Patterns are glob patterns (doublestar **) for source files.
	Patterns []string `yaml:"patterns"`
}

// ExportConfig configures serialization output.
type ExportConfig struct {
	// Formats lists the requested output formats.
	Formats []string `yaml:"formats"`

	// Destination is the directory serialized files are written to.
	Destination string `yaml:"destination"`
}

// NATSConfig configures optional publishing to the downstream consumer.
type NATSConfig struct {
	// URL is the NATS server URL; empty disables publishing.
	URL string `yaml:"url"`

	// Subject overrides the default ingest subject.
	Subject string `yaml:"subject"`
}

// WatchConfig configures source file watching for automatic re-loads.
type WatchConfig struct {
	// Enabled controls whether watch mode re-materializes on change.
	Enabled bool `yaml:"enabled"`

	// DebounceDelay is how long to wait for more changes before reloading.
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Ontology: "media",
		Sources: SourcesConfig{
			Patterns: []string{"data/**/*.csv"},
		},
		Export: ExportConfig{
			Formats:     []string{"turtle", "rdfxml"},
			Destination: "out",
		},
		NATS: NATSConfig{
			URL:     "",
			Subject: "",
		},
		Watch: WatchConfig{
			Enabled:       false,
			DebounceDelay: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Ontology == "" {
		return fmt.Errorf("ontology is required")
	}
	if len(c.Sources.Patterns) == 0 {
		return fmt.Errorf("sources.patterns is required")
	}
	if len(c.Export.Formats) == 0 {
		return fmt.Errorf("export.formats is required")
	}
	if c.Export.Destination == "" {
		return fmt.Errorf("export.destination is required")
	}
	return nil
}

// Merge overlays non-zero fields from other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Ontology != "" {
		c.Ontology = other.Ontology
	}
	if len(other.Sources.Patterns) > 0 {
		c.Sources.Patterns = other.Sources.Patterns
	}
	if len(other.Export.Formats) > 0 {
		c.Export.Formats = other.Export.Formats
	}
	if other.Export.Destination != "" {
		c.Export.Destination = other.Export.Destination
	}
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}
	if other.Watch.Enabled {
		c.Watch.Enabled = true
	}
	if other.Watch.DebounceDelay > 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
