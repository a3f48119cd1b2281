// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds server settings. Every field has a usable default.
type Config struct {
	// Port is the TCP port the server listens on.
	Port int `env:"WARIKAN_PORT" envDefault:"8080"`

	// DBPath is where finalized orders are archived. The default keeps them in memory.
	DBPath string `env:"WARIKAN_DB_PATH" envDefault:":memory:"`

	// CatalogPath names a JSON menu file. Empty means the built-in menu.
	CatalogPath string `env:"WARIKAN_CATALOG_PATH"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `env:"WARIKAN_LOG_LEVEL" envDefault:"info"`

	ReadTimeout     time.Duration `env:"WARIKAN_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WARIKAN_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"WARIKAN_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads an optional .env file from the working directory and then
// parses the environment. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}
