package transcript

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/harshanmathew/Youtube/internal/domain"
	"github.com/harshanmathew/Youtube/internal/metrics"
	"github.com/jonboulle/clockwork"
)

// MemoryCache provides in-memory caching of transcripts and language lists
// with TTL-based expiration. Negative entries (video has no transcript) use a
// separate, shorter TTL so a video that gains captions is picked up quickly.
type MemoryCache struct {
	mu          sync.RWMutex
	entries     map[string]*cacheEntry
	ttl         time.Duration
	negativeTTL time.Duration
	clock       clockwork.Clock
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

var _ domain.TranscriptCache = (*MemoryCache)(nil)

// NewMemoryCache creates a cache with the given TTLs for positive and
// negative entries.
func NewMemoryCache(ttl, negativeTTL time.Duration, clock clockwork.Clock) *MemoryCache {
	return &MemoryCache{
		entries:     make(map[string]*cacheEntry),
		ttl:         ttl,
		negativeTTL: negativeTTL,
		clock:       clock,
	}
}

func (c *MemoryCache) GetTranscript(_ context.Context, videoID, language string) (*domain.Transcript, bool) {
	if v, ok := c.get(transcriptKey(videoID, language)); ok {
		if t, ok := v.(*domain.Transcript); ok {
			metrics.CacheHitsTotal.WithLabelValues("memory", "transcript").Inc()
			return t, true
		}
	}
	return nil, false
}

func (c *MemoryCache) SetTranscript(_ context.Context, videoID, language string, t *domain.Transcript) {
	c.set(transcriptKey(videoID, language), t, c.ttl)
}

func (c *MemoryCache) GetLanguages(_ context.Context, videoID string) (*domain.LanguageList, bool) {
	if v, ok := c.get(languagesKey(videoID)); ok {
		if l, ok := v.(*domain.LanguageList); ok {
			metrics.CacheHitsTotal.WithLabelValues("memory", "languages").Inc()
			return l, true
		}
	}
	return nil, false
}

func (c *MemoryCache) SetLanguages(_ context.Context, videoID string, l *domain.LanguageList) {
	c.set(languagesKey(videoID), l, c.ttl)
}

func (c *MemoryCache) IsMissing(_ context.Context, videoID, language string) bool {
	_, ok := c.get(missingKey(videoID, language))
	if ok {
		metrics.CacheHitsTotal.WithLabelValues("memory", "negative").Inc()
	}
	return ok
}

func (c *MemoryCache) SetMissing(_ context.Context, videoID, language string) {
	c.set(missingKey(videoID, language), true, c.negativeTTL)
}

func (c *MemoryCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	// Expired entries are misses. They are not deleted here (read lock
	// only); eviction happens periodically.
	if c.clock.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (c *MemoryCache) set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{
		value:     value,
		expiresAt: c.clock.Now().Add(ttl),
	}
}

// Size returns the current number of entries in the cache (including expired).
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// EvictExpired removes all expired entries and returns the count evicted.
// This prevents unbounded cache growth over time.
func (c *MemoryCache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}

	return evicted
}

// StartEvictionTimer starts a background goroutine that periodically evicts
// expired entries. Returns a stop function.
func (c *MemoryCache) StartEvictionTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan bool)

	go func() {
		for {
			select {
			case <-ticker.Chan():
				evicted := c.EvictExpired()
				if evicted > 0 {
					slog.Debug("Evicted expired transcript cache entries",
						"count", evicted,
						"remaining", c.Size(),
					)
					metrics.CacheEvictions.Add(float64(evicted))
				}
				metrics.CacheSize.Set(float64(c.Size()))

			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
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
