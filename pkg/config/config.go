// Package config loads the CLI configuration from a JSON file,
// creating it with defaults on first run.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds the settings for the qledger CLI.
type Config struct {
	// DatabasePath is the SQLite database file holding the ledger.
	DatabasePath string `json:"database_path"`

	// RetryMaxSeconds bounds how long a transition is retried when the
	// storage reports a transient outage.
	RetryMaxSeconds int `json:"retry_max_seconds"`
}

const configFileName = "config.json"

// NewConfig creates a config with default values.
func NewConfig() *Config {
	return &Config{
		DatabasePath:    "./jobledger.db",
		RetryMaxSeconds: 15,
	}
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	appConfigDir := filepath.Join(configDir, "qledger")
	if err := os.MkdirAll(appConfigDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(appConfigDir, configFileName), nil
}

// Load reads the config file, writing the defaults on first run.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, Save(cfg)
		}
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config file.
func Save(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
