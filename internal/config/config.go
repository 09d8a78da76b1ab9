// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration.
type Config struct {
	APIKey    string        `env:"MARQUEE_API_KEY"`
	BaseURL   string        `env:"MARQUEE_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	DataDir   string        `env:"MARQUEE_DATA_DIR" envDefault:"~/.marquee"`
	Timeout   time.Duration `env:"MARQUEE_TIMEOUT" envDefault:"30s"`
	RateLimit float64       `env:"MARQUEE_RATE_LIMIT" envDefault:"20"`
	LogLevel  string        `env:"MARQUEE_LOG_LEVEL" envDefault:"warn"`
	LogFormat string        `env:"MARQUEE_LOG_FORMAT" envDefault:"console"`
	Crawl     CrawlConfig
}

// CrawlConfig holds settings for the id crawl.
type CrawlConfig struct {
	Pages          int           `env:"MARQUEE_CRAWL_PAGES" envDefault:"5"`
	Seeds          int           `env:"MARQUEE_CRAWL_SEEDS" envDefault:"50"`
	Concurrency    int           `env:"MARQUEE_CRAWL_CONCURRENCY" envDefault:"8"`
	RequestTimeout time.Duration `env:"MARQUEE_CRAWL_REQUEST_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from the environment. TMDB_API_KEY is honored
// when MARQUEE_API_KEY is unset.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("TMDB_API_KEY")
	}
	return cfg, nil
}

// DataPath returns the data directory with a leading "~" expanded.
func (c Config) DataPath() (string, error) {
	dir := c.DataDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return dir, nil
}

// DatabasePath returns the location of the state database, creating the
// data directory if needed.
func (c Config) DatabasePath() (string, error) {
	dir, err := c.DataPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return filepath.Join(dir, "marquee.db"), nil
}
