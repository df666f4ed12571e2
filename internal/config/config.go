// Package config loads the host configuration from an optional YAML file and
// PORTFOLIO_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the host configuration.
type Config struct {
	Port string `koanf:"port" validate:"required,numeric"`

	// DataDir is a site root containing data/*.json. DataURL, when set,
	// points at a remote site root and takes precedence.
	DataDir string `koanf:"data_dir"`
	DataURL string `koanf:"data_url" validate:"omitempty,url"`

	Template  string `koanf:"template" validate:"required"`
	StaticDir string `koanf:"static_dir"`
	ImagesDir string `koanf:"images_dir"`
	FilesDir  string `koanf:"files_dir"`

	// DBPath is the load history database; empty disables it.
	DBPath        string `koanf:"db_path"`
	RetentionDays int    `koanf:"retention_days" validate:"gte=0"`

	Admin Admin `koanf:"admin"`
}

// Admin holds the diagnostics dashboard credentials.
type Admin struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Port:          "8080",
		DataDir:       ".",
		Template:      "templates/index.html",
		StaticDir:     "static",
		ImagesDir:     "images",
		FilesDir:      "files",
		DBPath:        "portfolio.db",
		RetentionDays: 365,
	}
}

var validate = validator.New()

// Load reads path if it exists, then overlays PORTFOLIO_* variables
// (PORTFOLIO_ADMIN__USERNAME -> admin.username). A bare PORT variable is
// honoured too, as hosting platforms set it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("PORTFOLIO_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "PORTFOLIO_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" && !k.Exists("port") {
		cfg.Port = port
	}

	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.DataURL == "" && c.DataDir == "" {
		return fmt.Errorf("config error: one of data_dir or data_url is required")
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}
