// Package config loads and validates application configuration from
// environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// The default is the Expo web dev server.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:8081" envSeparator:","`

	// DatabaseURL is the Postgres connection string. Empty runs the server
	// without persistence: publishing is simulated and /trips is not mounted.
	DatabaseURL string `env:"DATABASE_URL"`

	// PublishDelay is how long the simulated publisher takes.
	PublishDelay time.Duration `env:"PUBLISH_DELAY" envDefault:"1s"`

	// DefaultDays is the length of a fresh trip.
	DefaultDays int `env:"DEFAULT_DAYS" envDefault:"3"`

	// MaxDays caps how long a trip may get.
	MaxDays int `env:"MAX_DAYS" envDefault:"366"`

	// CreatorID is stamped on every new trip until real accounts exist.
	CreatorID string `env:"CREATOR_ID" envDefault:"user-123"`

	MaxBodyBytes       int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	RateLimitPerMinute int   `env:"RATE_LIMIT_PER_MINUTE" envDefault:"300"`

	// OTLPEndpoint enables trace export when set.
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads configuration from the environment and returns a Config.
// Variables from the given .env files (default ".env") are applied first;
// a missing file is not an error and real environment variables win.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config.Load: %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SlogLevel returns LogLevel as a slog.Level.
func (c Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (c Config) validate() error {
	var problems []string
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		problems = append(problems, "LOG_LEVEL must be one of debug, info, warn, error")
	}
	if c.DefaultDays < 1 {
		problems = append(problems, "DEFAULT_DAYS must be at least 1")
	}
	if c.MaxDays < c.DefaultDays {
		problems = append(problems, "MAX_DAYS must not be less than DEFAULT_DAYS")
	}
	if c.PublishDelay < 0 {
		problems = append(problems, "PUBLISH_DELAY must not be negative")
	}
	if c.MaxBodyBytes < 1 {
		problems = append(problems, "MAX_BODY_BYTES must be positive")
	}
	if c.RateLimitPerMinute < 1 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// trimAll trims each entry and drops empty ones.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
