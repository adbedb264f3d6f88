// Package config loads and saves the shelve configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mydehq/shelve/internal/organizer"
)

// DefaultFileName is the configuration file shelve looks for in the
// working directory.
const DefaultFileName = ".shelve.yml"

// Config mirrors the YAML configuration file.
type Config struct {
	SourceRoots     []string          `yaml:"source_roots"`
	TargetRoots     []string          `yaml:"target_roots"`
	Rules           map[string]string `yaml:"rules,omitempty"`
	LengthThreshold int               `yaml:"length_threshold,omitempty"`
	Recursive       bool              `yaml:"recursive"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LengthThreshold: organizer.DefaultLengthThreshold,
		Recursive:       true,
	}
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.LengthThreshold == 0 {
		cfg.LengthThreshold = organizer.DefaultLengthThreshold
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the invariants the organizer relies on.
func (c *Config) Validate() error {
	if c.LengthThreshold < 1 {
		return fmt.Errorf("length_threshold must be at least 1, got %d", c.LengthThreshold)
	}
	for pattern, target := range c.Rules {
		if pattern == "" {
			return fmt.Errorf("rules must not have an empty pattern")
		}
		if !filepath.IsAbs(target) {
			return fmt.Errorf("rule %q: target %q must be an absolute path", pattern, target)
		}
	}
	return nil
}

// Save writes the configuration to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
