package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Host      string `env:"HOST" default:"0.0.0.0"`
	Port      string `env:"PORT" default:"8000"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	RedisURL string `env:"REDIS_URL"`

	TranscriptCacheTTL time.Duration `env:"TRANSCRIPT_CACHE_TTL" default:"1h"`
	NegativeCacheTTL   time.Duration `env:"NEGATIVE_CACHE_TTL" default:"5m"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" default:"10s"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" default:"10"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return fmt.Errorf("PORT must be numeric: %w", err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.TranscriptCacheTTL <= 0 {
		return errors.New("TRANSCRIPT_CACHE_TTL must be positive")
	}
	if cfg.NegativeCacheTTL <= 0 {
		return errors.New("NEGATIVE_CACHE_TTL must be positive")
	}

	if cfg.UpstreamTimeout < time.Second || cfg.UpstreamTimeout > time.Minute {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be between 1s and 1m, got %s", cfg.UpstreamTimeout)
	}

	if cfg.RateLimitRPS <= 0 {
		return errors.New("RATE_LIMIT_RPS must be positive")
	}
	if cfg.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_BURST must be at least 1")
	}

	return nil
}

// ListenAddr returns the host:port the server binds to.
func (c *Config) ListenAddr() string {
	return c.Host + ":" + c.Port
}
