// Package config loads and persists the engine configuration from
// .xbrl/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete engine configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Logging      LoggingConfig      `json:"logging" mapstructure:"logging"`
	Presentation PresentationConfig `json:"presentation" mapstructure:"presentation"`
	Calculation  CalculationConfig  `json:"calculation" mapstructure:"calculation"`
	Cache        CacheConfig        `json:"cache" mapstructure:"cache"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// PresentationConfig controls presentation linkbase processing
type PresentationConfig struct {
	// StrictParents rejects concepts with more than one parent per
	// extended link role instead of keeping the first.
	StrictParents bool `json:"strictParents" mapstructure:"strictParents"`
}

// CalculationConfig controls calculation validation
type CalculationConfig struct {
	// Float32Compat reproduces the float32-coerced arithmetic of older
	// processors instead of exact lexical decimals.
	Float32Compat bool `json:"float32Compat" mapstructure:"float32Compat"`
}

// CacheConfig controls the on-disk DTS cache
type CacheConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	Path       string `json:"path" mapstructure:"path"`
	TTLSeconds int    `json:"ttlSeconds" mapstructure:"ttlSeconds"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "human",
		},
		Cache: CacheConfig{
			Enabled:    true,
			Path:       ".xbrl/cache.db",
			TTLSeconds: 24 * 60 * 60,
		},
	}
}

// LoadConfig loads configuration from <root>/.xbrl/config.json, falling back
// to defaults when no file exists.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "human")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", ".xbrl/cache.db")
	v.SetDefault("cache.ttlSeconds", 24*60*60)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".xbrl"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to <root>/.xbrl/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".xbrl")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}
