package server

import (
	"context"
	"time"

	"github.com/harshanmathew/Youtube/internal/version"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if checker := s.getRedisHealthChecker(); checker != nil {
		if err := checker.Ping(ctx).Err(); err != nil {
			return c.JSON(503, map[string]any{
				"status":       "unhealthy",
				"failed_check": "redis",
				"error":        err.Error(),
			})
		}
	}

	return c.JSON(200, map[string]string{"status": "ready"})
}

func (s *Server) getRedisHealthChecker() redisHealthChecker {
	if s.redisHealthCheck != nil {
		return s.redisHealthCheck
	}
	if s.redisClient == nil {
		return nil
	}
	return s.redisClient
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}
