// Package redis implements the Redis-backed transcript cache tier.
//
// NewClient wires the metrics and circuit breaker hooks into every
// connection. TranscriptCache stores transcripts, language lists, and
// negative entries as JSON values with TTLs, degrading to cache misses on
// any failure.
package redis
