// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/avencia/worldweave/internal/domain/entities"
)

const (
	// DefaultConfigDir is the directory name for worldweave configuration.
	DefaultConfigDir = ".worldweave"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default SQLite database file name.
	DefaultDatabaseFile = "worldweave.db"
)

// Config holds static configuration (read-only after init).
type Config struct {
	SQLite        SQLiteConfig        `yaml:"sqlite,omitempty"`
	HTTP          HTTPConfig          `yaml:"http,omitempty"`
	Tags          TagConfig           `yaml:"tags,omitempty"`
	Collaboration CollaborationConfig `yaml:"collaboration,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	Path string `yaml:"path,omitempty" env:"WORLDWEAVE_SQLITE_PATH"`
}

// HTTPConfig holds configuration for the API server.
type HTTPConfig struct {
	// Addr is the listen address for the REST API.
	Addr string `yaml:"addr,omitempty" env:"WORLDWEAVE_HTTP_ADDR"`
	// IdentityHeader names the header carrying the verified author
	// identity, set by the identity gateway in front of this service.
	IdentityHeader string `yaml:"identity_header,omitempty" env:"WORLDWEAVE_IDENTITY_HEADER"`
}

// TagConfig holds tagging policy.
type TagConfig struct {
	// MaxPerContent caps how many tags one content item may hold.
	MaxPerContent int `yaml:"max_per_content,omitempty" env:"WORLDWEAVE_TAG_LIMIT"`
}

// CollaborationConfig holds the collaboration score policy. Weights are
// configuration, not constants buried in engine logic.
type CollaborationConfig struct {
	LinkWeight float64 `yaml:"link_weight,omitempty" env:"WORLDWEAVE_COLLAB_LINK_WEIGHT"`
	TagWeight  float64 `yaml:"tag_weight,omitempty" env:"WORLDWEAVE_COLLAB_TAG_WEIGHT"`
	TagCap     int     `yaml:"tag_cap,omitempty" env:"WORLDWEAVE_COLLAB_TAG_CAP"`
}

// Weights converts the section into domain score weights.
func (c CollaborationConfig) Weights() entities.ScoreWeights {
	return entities.ScoreWeights{
		LinkWeight: c.LinkWeight,
		TagWeight:  c.TagWeight,
		TagCap:     c.TagCap,
	}
}

// Default returns a Config with default values.
func Default() *Config {
	weights := entities.DefaultScoreWeights()
	return &Config{
		HTTP: HTTPConfig{
			Addr:           ":8080",
			IdentityHeader: "X-Author",
		},
		Tags: TagConfig{
			MaxPerContent: 10,
		},
		Collaboration: CollaborationConfig{
			LinkWeight: weights.LinkWeight,
			TagWeight:  weights.TagWeight,
			TagCap:     weights.TagCap,
		},
	}
}

// ConfigFilePath returns the config file path under basePath.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists reports whether a config file exists under basePath.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}

// Load loads configuration from the .worldweave directory in the given path.
// A missing config file yields defaults; environment variables override both.
func Load(basePath string) (*Config, error) {
	cfg := Default()

	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
	data, err := os.ReadFile(configFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}

	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = filepath.Join(basePath, DefaultConfigDir, DefaultDatabaseFile)
	}
	if cfg.Tags.MaxPerContent <= 0 {
		cfg.Tags.MaxPerContent = 10
	}

	return cfg, nil
}

// Save writes the configuration to the config file under basePath.
func (c *Config) Save(basePath string) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	configFile := filepath.Join(configDir, DefaultConfigFile)
	if err := os.WriteFile(configFile, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
