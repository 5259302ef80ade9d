// Package config loads the application configuration from a YAML file,
// falling back to sensible defaults for anything unset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the analyzer service.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// DatabasePath is the sqlite file holding persisted transactions.
	DatabasePath string `yaml:"database_path"`
	// TempDir receives PDF scratch files during upload processing; empty
	// means the system temp directory.
	TempDir string `yaml:"temp_dir"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// MaxUploadMB caps the statement upload body size.
	MaxUploadMB int `yaml:"max_upload_mb"`
	// CategoryRulesPath optionally points at a YAML file overriding the
	// built-in categorizer rules.
	CategoryRulesPath string `yaml:"category_rules_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:         ":8080",
		DatabasePath: "finance.db",
		LogLevel:     "info",
		MaxUploadMB:  32,
	}
}

// Load reads the YAML config at path over the defaults. A missing file is not
// an error when optional is true — the defaults stand.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && optional {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = Default().MaxUploadMB
	}
	return cfg, nil
}
