// Package config loads the YAML configuration file and applies defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration stored at ~/.ledgerline/config.yaml.
type Config struct {
	APIBaseURL string `yaml:"api_base_url"`
	PageSize   int    `yaml:"page_size"`
	Overscan   int    `yaml:"overscan"`
	// ScrollDebounceMS is how long the scrolling flag stays set after the
	// last scroll event, in milliseconds.
	ScrollDebounceMS int `yaml:"scroll_debounce_ms"`
	// CacheTTLSeconds is how long fetched pages stay fresh.
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	StateStore      string `yaml:"state_store"` // "memory", "file", or "sqlite"
	StatePath       string `yaml:"state_path"`
	LogLevel        string `yaml:"log_level"`
	LogFile         string `yaml:"log_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:       "http://localhost:8080",
		PageSize:         50,
		Overscan:         3,
		ScrollDebounceMS: 150,
		CacheTTLSeconds:  30,
		StateStore:       "file",
		LogLevel:         "info",
	}
}

// Path returns the default config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ledgerline", "config.yaml")
}

// StateDir returns the directory for persisted UI state.
func StateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ledgerline", "state")
}

// Load reads the config at path, layered over the defaults. A missing file
// is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg.normalize(), nil
}

// Save writes the config to path, creating the directory if needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// ScrollDebounce returns the debounce interval as a duration.
func (c Config) ScrollDebounce() time.Duration {
	return time.Duration(c.ScrollDebounceMS) * time.Millisecond
}

// CacheTTL returns the cache freshness interval as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c Config) normalize() Config {
	def := Default()
	if c.APIBaseURL == "" {
		c.APIBaseURL = def.APIBaseURL
	}
	if c.PageSize <= 0 {
		c.PageSize = def.PageSize
	}
	if c.Overscan < 0 {
		c.Overscan = def.Overscan
	}
	if c.ScrollDebounceMS <= 0 {
		c.ScrollDebounceMS = def.ScrollDebounceMS
	}
	if c.CacheTTLSeconds <= 0 {
		c.CacheTTLSeconds = def.CacheTTLSeconds
	}
	if c.StateStore == "" {
		c.StateStore = def.StateStore
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	return c
}
