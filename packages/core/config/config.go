package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Hook names accepted in Config.Hook.
const (
	HookIdentity = "identity"
	HookLabeled  = "labeled"
)

// Config represents the testconsole configuration
type Config struct {
	Hook    string  `json:"hook,omitempty" yaml:"hook,omitempty"` // identity or labeled
	NoColor *bool   `json:"noColor,omitempty" yaml:"noColor,omitempty"`
	Rate    float64 `json:"rate,omitempty" yaml:"rate,omitempty"` // calls per second, 0 = unpaced
	Debug   *bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	Report  string  `json:"report,omitempty" yaml:"report,omitempty"` // results file path
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetDebug returns the debug setting, defaulting to false
func (c *Config) GetDebug() bool {
	return getBool(c.Debug, false)
}

// Validate checks that configured values are usable
func (c *Config) Validate() error {
	switch c.Hook {
	case "", HookIdentity, HookLabeled:
	default:
		return fmt.Errorf("unknown hook %q (expected %s or %s)", c.Hook, HookIdentity, HookLabeled)
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate must not be negative, got %v", c.Rate)
	}
	return nil
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".testconsole.json",
	"testconsole.json",
	".testconsolerc",
	"testconsole.yaml",
	"testconsole.yml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Hook != "" {
		result.Hook = other.Hook
	}
	if other.Rate > 0 {
		result.Rate = other.Rate
	}
	if other.Report != "" {
		result.Report = other.Report
	}

	// Boolean flags - only override if explicitly set in other config
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.Debug != nil {
		result.Debug = other.Debug
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
