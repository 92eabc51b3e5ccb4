package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/harshanmathew/Youtube/internal/domain"
	"github.com/harshanmathew/Youtube/internal/metrics"
	goredis "github.com/redis/go-redis/v9"
)

// TranscriptCache is the Redis-backed cache tier. Values are stored as JSON
// with a TTL. All failures degrade to cache misses: a broken Redis never
// fails a request, it only costs an upstream fetch.
type TranscriptCache struct {
	rdb         *goredis.Client
	ttl         time.Duration
	negativeTTL time.Duration
}

var _ domain.TranscriptCache = (*TranscriptCache)(nil)

// NewTranscriptCache creates a Redis cache tier with the given TTLs for
// positive and negative entries.
func NewTranscriptCache(rdb *goredis.Client, ttl, negativeTTL time.Duration) *TranscriptCache {
	return &TranscriptCache{
		rdb:         rdb,
		ttl:         ttl,
		negativeTTL: negativeTTL,
	}
}

func (c *TranscriptCache) GetTranscript(ctx context.Context, videoID, language string) (*domain.Transcript, bool) {
	var t domain.Transcript
	if !c.getJSON(ctx, transcriptKey(videoID, language), &t) {
		return nil, false
	}
	metrics.CacheHitsTotal.WithLabelValues("redis", "transcript").Inc()
	return &t, true
}

func (c *TranscriptCache) SetTranscript(ctx context.Context, videoID, language string, t *domain.Transcript) {
	c.setJSON(ctx, transcriptKey(videoID, language), t, c.ttl)
}

func (c *TranscriptCache) GetLanguages(ctx context.Context, videoID string) (*domain.LanguageList, bool) {
	var l domain.LanguageList
	if !c.getJSON(ctx, languagesKey(videoID), &l) {
		return nil, false
	}
	metrics.CacheHitsTotal.WithLabelValues("redis", "languages").Inc()
	return &l, true
}

func (c *TranscriptCache) SetLanguages(ctx context.Context, videoID string, l *domain.LanguageList) {
	c.setJSON(ctx, languagesKey(videoID), l, c.ttl)
}

func (c *TranscriptCache) IsMissing(ctx context.Context, videoID, language string) bool {
	ok, err := c.rdb.Exists(ctx, missingKey(videoID, language)).Result()
	if err != nil {
		logCacheError("exists", err)
		return false
	}
	if ok > 0 {
		metrics.CacheHitsTotal.WithLabelValues("redis", "negative").Inc()
		return true
	}
	return false
}

func (c *TranscriptCache) SetMissing(ctx context.Context, videoID, language string) {
	if err := c.rdb.Set(ctx, missingKey(videoID, language), "1", c.negativeTTL).Err(); err != nil {
		logCacheError("set", err)
	}
}

func (c *TranscriptCache) getJSON(ctx context.Context, key string, dst any) bool {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			logCacheError("get", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// Corrupt entry; drop it so the next write repairs the key.
		logCacheError("unmarshal", err)
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *TranscriptCache) setJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logCacheError("marshal", err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		logCacheError("set", err)
	}
}

func logCacheError(operation string, err error) {
	slog.Warn("Redis transcript cache degraded to miss", "operation", operation, "error", err)
}

func transcriptKey(videoID, language string) string {
	return "transcript:" + videoID + ":" + language
}

func languagesKey(videoID string) string {
	return "languages:" + videoID
}

func missingKey(videoID, language string) string {
	return "missing:" + videoID + ":" + language
}
