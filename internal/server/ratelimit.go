package server

import (
	"sync"
	"time"

	apperrors "github.com/harshanmathew/Youtube/internal/errors"
	"github.com/harshanmathew/Youtube/internal/metrics"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	clientMaxIdle = 10 * time.Minute
	pruneInterval = time.Minute
)

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter enforces a per-client token bucket keyed by client IP.
// Buckets idle longer than clientMaxIdle are pruned opportunistically on the
// allow path, so no background goroutine is needed.
type ClientRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientBucket
	rps       rate.Limit
	burst     int
	lastPrune time.Time
}

func NewClientRateLimiter(rps float64, burst int) *ClientRateLimiter {
	return &ClientRateLimiter{
		clients:   make(map[string]*clientBucket),
		rps:       rate.Limit(rps),
		burst:     burst,
		lastPrune: time.Now(),
	}
}

// Allow reports whether the client identified by ip may make a request now.
func (l *ClientRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastPrune) > pruneInterval {
		l.pruneLocked(now)
	}

	bucket, ok := l.clients[ip]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter.Allow()
}

// Size returns the number of tracked clients.
func (l *ClientRateLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *ClientRateLimiter) pruneLocked(now time.Time) {
	for ip, bucket := range l.clients {
		if now.Sub(bucket.lastSeen) > clientMaxIdle {
			delete(l.clients, ip)
		}
	}
	l.lastPrune = now
}

func (s *Server) rateLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()
		if !s.limiter.Allow(ip) {
			metrics.RateLimitedRequests.Inc()
			return apperrors.RateLimitedError("too many requests").
				WithField("client_ip", ip)
		}
		return next(c)
	}
}
