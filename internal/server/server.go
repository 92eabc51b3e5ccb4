package server

import (
	"context"
	"time"

	"github.com/harshanmathew/Youtube/internal/config"
	"github.com/harshanmathew/Youtube/internal/domain"
	apperrors "github.com/harshanmathew/Youtube/internal/errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
)

// transcriptService is the surface of the transcript service the handlers use.
type transcriptService interface {
	GetTranscript(ctx context.Context, input, language string) (*domain.Transcript, error)
	GetLanguages(ctx context.Context, input string) (*domain.LanguageList, error)
}

// redisHealthChecker is a minimal interface for Redis health checks
type redisHealthChecker interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

type Server struct {
	echo        *echo.Echo
	config      *config.Config
	transcripts transcriptService
	limiter     *ClientRateLimiter
	redisClient *goredis.Client
	startTime   time.Time

	// Overrides the redis client in health checks; tests only.
	redisHealthCheck redisHealthChecker
}

// NewServer creates the HTTP server. redisClient may be nil when Redis is not
// configured; the readiness check then skips it.
func NewServer(cfg *config.Config, transcripts transcriptService, redisClient *goredis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:        e,
		config:      cfg,
		transcripts: transcripts,
		limiter:     NewClientRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		redisClient: redisClient,
		startTime:   time.Now(),
	}

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(srv.correlationMiddleware)
	e.Use(srv.metricsMiddleware)
	e.Use(apperrors.Middleware())

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(s.config.ListenAddr())
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
