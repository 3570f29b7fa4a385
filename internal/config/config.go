// Package config manages PVC configuration and the store directory.
// It handles loading, saving, and lazily creating the ~/.pvc directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// HomeEnv overrides the store directory when set.
	HomeEnv = "PVC_HOME"

	DefaultDirName = ".pvc"
	ConfigFile     = "config"
	DatabaseFile   = "prompts.db"

	defaultModel = "gpt-4"
)

// Config represents the PVC configuration
type Config struct {
	DefaultModel string `toml:"default_model"`
	path         string // path to the store directory
}

// Dir returns the store directory, honoring PVC_HOME.
func Dir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// Load reads the configuration, creating the store directory and a
// default config file on first use.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	cfg := &Config{DefaultModel: defaultModel, path: dir}

	configPath := filepath.Join(dir, ConfigFile)
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = defaultModel
	}

	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(c.path, ConfigFile), data, 0644)
}

// Path returns the store directory
func (c *Config) Path() string {
	return c.path
}

// DatabasePath returns the path to the SQLite database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.path, DatabaseFile)
}
