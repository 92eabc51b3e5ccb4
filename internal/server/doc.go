// Package server implements the HTTP server using Echo framework.
//
// Routes: transcript API (/, /transcript, /languages) and observability
// (/health/live, /health/ready, /metrics, /version). API routes are rate
// limited per client IP.
package server
