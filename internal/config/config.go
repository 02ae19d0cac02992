// Package config provides configuration management for cflprep.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the project configuration file looked up in the
// current directory.
const DefaultFileName = ".cflprep.yml"

// Config holds the cflprep project configuration.
type Config struct {
	Source         string            `yaml:"source"`
	WorkDir        string            `yaml:"work_dir"`
	SourceEncoding string            `yaml:"source_encoding,omitempty"`
	Attributes     map[string]string `yaml:"attributes,omitempty"`

	// Metadata passed through to the downstream publisher; cflprep never
	// contacts Confluence itself.
	SpaceKey   string `yaml:"space_key,omitempty"`
	AncestorID string `yaml:"ancestor_id,omitempty"`
}

// Validate checks that all required fields are present.
func (c *Config) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.WorkDir == "" {
		return errors.New("work_dir is required")
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables. A .env file
// in the current directory is read first, without overriding variables
// already set in the environment. Environment values override existing
// config values only if non-empty.
func (c *Config) LoadFromEnv() {
	_ = godotenv.Load()

	if source := os.Getenv("CFLPREP_SOURCE"); source != "" {
		c.Source = source
	}
	if workDir := os.Getenv("CFLPREP_WORK_DIR"); workDir != "" {
		c.WorkDir = workDir
	}
	if enc := os.Getenv("CFLPREP_SOURCE_ENCODING"); enc != "" {
		c.SourceEncoding = enc
	}
	if space := os.Getenv("CFLPREP_SPACE_KEY"); space != "" {
		c.SpaceKey = space
	}
	if ancestor := os.Getenv("CFLPREP_ANCESTOR_ID"); ancestor != "" {
		c.AncestorID = ancestor
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return DefaultFileName
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
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

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file yields an empty config populated from the
// environment only.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
