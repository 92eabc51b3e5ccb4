package transcript

import (
	"context"
	"testing"
	"time"

	"github.com/harshanmathew/Youtube/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTranscript(videoID string) *domain.Transcript {
	return &domain.Transcript{
		VideoID: videoID,
		Entries: []domain.TranscriptEntry{
			{Timestamp: "[00:00]", Text: "hello", Start: 0, Duration: 1},
		},
	}
}

func TestMemoryCache_TranscriptRoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	cache := NewMemoryCache(time.Minute, time.Second, clock)

	_, ok := cache.GetTranscript(ctx, "vid00000001", "en")
	assert.False(t, ok)

	cache.SetTranscript(ctx, "vid00000001", "en", sampleTranscript("vid00000001"))

	got, ok := cache.GetTranscript(ctx, "vid00000001", "en")
	require.True(t, ok)
	assert.Equal(t, "vid00000001", got.VideoID)

	// Different language is a separate entry.
	_, ok = cache.GetTranscript(ctx, "vid00000001", "de")
	assert.False(t, ok)
}

func TestMemoryCache_TranscriptExpiry(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	cache := NewMemoryCache(time.Minute, time.Second, clock)

	cache.SetTranscript(ctx, "vid00000001", "", sampleTranscript("vid00000001"))

	clock.Advance(59 * time.Second)
	_, ok := cache.GetTranscript(ctx, "vid00000001", "")
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = cache.GetTranscript(ctx, "vid00000001", "")
	assert.False(t, ok)
}

func TestMemoryCache_LanguagesRoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	cache := NewMemoryCache(time.Minute, time.Second, clock)

	list := &domain.LanguageList{
		VideoID:   "vid00000001",
		Languages: []domain.LanguageInfo{{LanguageCode: "en", LanguageName: "English"}},
	}
	cache.SetLanguages(ctx, "vid00000001", list)

	got, ok := cache.GetLanguages(ctx, "vid00000001")
	require.True(t, ok)
	assert.Equal(t, list, got)
}

func TestMemoryCache_NegativeEntriesUseShorterTTL(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	cache := NewMemoryCache(time.Hour, time.Minute, clock)

	cache.SetMissing(ctx, "vid00000001", "en")
	assert.True(t, cache.IsMissing(ctx, "vid00000001", "en"))

	clock.Advance(2 * time.Minute)
	assert.False(t, cache.IsMissing(ctx, "vid00000001", "en"))
}

func TestMemoryCache_EvictExpired(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	cache := NewMemoryCache(time.Minute, time.Second, clock)

	cache.SetTranscript(ctx, "vid00000001", "", sampleTranscript("vid00000001"))
	cache.SetMissing(ctx, "vid00000002", "")
	assert.Equal(t, 2, cache.Size())

	clock.Advance(30 * time.Second)
	assert.Equal(t, 1, cache.EvictExpired()) // only the negative entry expired
	assert.Equal(t, 1, cache.Size())

	clock.Advance(time.Hour)
	assert.Equal(t, 1, cache.EvictExpired())
	assert.Equal(t, 0, cache.Size())
}

func TestMemoryCache_EvictionTimer(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	cache := NewMemoryCache(time.Minute, time.Second, clock)

	cache.SetTranscript(ctx, "vid00000001", "", sampleTranscript("vid00000001"))

	stop := cache.StartEvictionTimer(time.Minute)
	defer stop()

	clock.Advance(2 * time.Minute)

	// The eviction goroutine runs asynchronously after the tick.
	assert.Eventually(t, func() bool {
		return cache.Size() == 0
	}, time.Second, 5*time.Millisecond)
}
