package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (not rate limited)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// API routes (rate limited per client)
	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/transcript", s.handleTranscript, s.rateLimitMiddleware)
	s.echo.GET("/languages", s.handleLanguages, s.rateLimitMiddleware)
}
