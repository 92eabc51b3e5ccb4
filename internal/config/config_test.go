package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, time.Hour, cfg.TranscriptCacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.NegativeCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "", cfg.RedisURL)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("TRANSCRIPT_CACHE_TTL", "30m")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 30*time.Minute, cfg.TranscriptCacheTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		envVar  string
		value   string
		wantErr string
	}{
		{"non-numeric port", "PORT", "eighty", "PORT must be numeric"},
		{"port too large", "PORT", "70000", "PORT must be between 1 and 65535"},
		{"port zero", "PORT", "0", "PORT must be between 1 and 65535"},
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL must be one of"},
		{"bad log format", "LOG_FORMAT", "xml", "LOG_FORMAT must be text or json"},
		{"zero cache ttl", "TRANSCRIPT_CACHE_TTL", "0s", "TRANSCRIPT_CACHE_TTL must be positive"},
		{"negative cache ttl", "NEGATIVE_CACHE_TTL", "-1m", "NEGATIVE_CACHE_TTL must be positive"},
		{"upstream timeout too short", "UPSTREAM_TIMEOUT", "100ms", "UPSTREAM_TIMEOUT must be between 1s and 1m"},
		{"upstream timeout too long", "UPSTREAM_TIMEOUT", "5m", "UPSTREAM_TIMEOUT must be between 1s and 1m"},
		{"zero rate limit", "RATE_LIMIT_RPS", "0", "RATE_LIMIT_RPS must be positive"},
		{"zero burst", "RATE_LIMIT_BURST", "0", "RATE_LIMIT_BURST must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestListenAddr(t *testing.T) {
	cfg := &Config{Host: "0.0.0.0", Port: "8000"}
	assert.Equal(t, "0.0.0.0:8000", cfg.ListenAddr())
}
