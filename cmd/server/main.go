package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harshanmathew/Youtube/internal/config"
	"github.com/harshanmathew/Youtube/internal/domain"
	"github.com/harshanmathew/Youtube/internal/logging"
	"github.com/harshanmathew/Youtube/internal/redis"
	"github.com/harshanmathew/Youtube/internal/server"
	"github.com/harshanmathew/Youtube/internal/transcript"
	"github.com/harshanmathew/Youtube/internal/version"
	"github.com/harshanmathew/Youtube/internal/youtube"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting",
		"env", cfg.AppEnv,
		"addr", cfg.ListenAddr(),
		"version", version.Version,
	)

	// Memory cache is always the first tier; Redis is an optional second tier.
	memCache := transcript.NewMemoryCache(cfg.TranscriptCacheTTL, cfg.NegativeCacheTTL, clock)
	stopEviction := memCache.StartEvictionTimer(1 * time.Minute)
	defer stopEviction()

	caches := []domain.TranscriptCache{memCache}

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient = setupRedis(context.Background(), cfg)
		defer func() { _ = redisClient.Close() }()
		caches = append(caches, redis.NewTranscriptCache(redisClient, cfg.TranscriptCacheTTL, cfg.NegativeCacheTTL))
	}

	fetcher := youtube.NewClient(cfg.UpstreamTimeout)
	transcripts := transcript.NewService(fetcher, caches...)

	srv := server.NewServer(cfg, transcripts, redisClient)

	done := runGracefulShutdown(srv, cfg.ShutdownTimeout)

	slog.Info("Server starting", "addr", cfg.ListenAddr())
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
