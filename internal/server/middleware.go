package server

import (
	"strconv"
	"time"

	"github.com/harshanmathew/Youtube/internal/metrics"
	"github.com/harshanmathew/Youtube/internal/platform/correlation"
	"github.com/labstack/echo/v4"
)

const correlationHeader = "X-Correlation-ID"

// correlationMiddleware attaches a correlation ID to the request context so
// every log line for the request carries it. An inbound X-Correlation-ID is
// honored; otherwise a fresh ID is generated.
func (s *Server) correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(correlationHeader)
		if id == "" {
			id = correlation.NewID()
		}

		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(correlationHeader, id)

		return next(c)
	}
}

// metricsMiddleware records request counts and latency per route.
func (s *Server) metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request().Method

		metrics.HTTPRequestDuration.WithLabelValues(path, method).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(path, method, strconv.Itoa(c.Response().Status)).Inc()

		return err
	}
}
