// Package config loads the YAML configuration: which accounts to track, how
// many posts to scan, and where snapshots live.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TokenEnvVar overrides the configured proxy token when set, keeping the
// secret out of the config file.
const TokenEnvVar = "SCRAPE_TOKEN"

// Config is the top-level application configuration.
type Config struct {
	// Accounts is the ordered list of account handles to scan.
	Accounts []string `yaml:"accounts"`

	// PostsPerAccount caps how many recent posts are scanned per account.
	PostsPerAccount int `yaml:"posts_per_account"`

	// DataDir holds the JSON snapshot and text report.
	DataDir string `yaml:"data_dir"`

	// RefreshMinutes is how long a snapshot stays fresh before the
	// pipeline re-runs.
	RefreshMinutes int `yaml:"refresh_minutes"`

	// DelaySeconds is the politeness pause between account fetches.
	DelaySeconds int `yaml:"delay_seconds"`

	// Token is the scraping proxy API token. Prefer the SCRAPE_TOKEN
	// environment variable over storing it here.
	Token string `yaml:"token"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		Accounts:        []string{},
		PostsPerAccount: 10,
		DataDir:         "~/.local/share/gram-events",
		RefreshMinutes:  30,
		DelaySeconds:    1,
	}
}

// Load reads the config file at path, filling unset fields from defaults.
// A missing file yields the defaults. The proxy token environment variable,
// when set, wins over the file value.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.PostsPerAccount <= 0 {
		cfg.PostsPerAccount = 10
	}
	if cfg.RefreshMinutes <= 0 {
		cfg.RefreshMinutes = 30
	}
	if cfg.DelaySeconds < 0 {
		cfg.DelaySeconds = 0
	}
	if token := os.Getenv(TokenEnvVar); token != "" {
		cfg.Token = token
	}
	return cfg, nil
}

// RefreshInterval returns the snapshot freshness window.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshMinutes) * time.Minute
}

// Delay returns the pause between account fetches.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}
