package transcript

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harshanmathew/Youtube/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	fetchTranscriptFn func(ctx context.Context, videoID, language string) ([]domain.Cue, error)
	listTracksFn      func(ctx context.Context, videoID string) ([]domain.CaptionTrack, error)
	fetchCalls        int
	listCalls         int
}

func (m *mockFetcher) FetchTranscript(ctx context.Context, videoID, language string) ([]domain.Cue, error) {
	m.fetchCalls++
	if m.fetchTranscriptFn != nil {
		return m.fetchTranscriptFn(ctx, videoID, language)
	}
	return nil, errors.New("not implemented")
}

func (m *mockFetcher) ListTracks(ctx context.Context, videoID string) ([]domain.CaptionTrack, error) {
	m.listCalls++
	if m.listTracksFn != nil {
		return m.listTracksFn(ctx, videoID)
	}
	return nil, errors.New("not implemented")
}

func newMemoryCache() *MemoryCache {
	return NewMemoryCache(time.Minute, time.Minute, clockwork.NewFakeClock())
}

func TestGetTranscript_FetchesAndFormats(t *testing.T) {
	fetcher := &mockFetcher{
		fetchTranscriptFn: func(_ context.Context, videoID, language string) ([]domain.Cue, error) {
			assert.Equal(t, "dQw4w9WgXcQ", videoID)
			assert.Equal(t, "en", language)
			return []domain.Cue{{Start: 65, Duration: 2, Text: "hello"}}, nil
		},
	}
	svc := NewService(fetcher, newMemoryCache())

	tr, err := svc.GetTranscript(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "en")
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", tr.VideoID)
	require.Len(t, tr.Entries, 1)
	assert.Equal(t, "[01:05]", tr.Entries[0].Timestamp)
	assert.Equal(t, "hello", tr.Entries[0].Text)
}

func TestGetTranscript_InvalidInput(t *testing.T) {
	svc := NewService(&mockFetcher{}, newMemoryCache())

	_, err := svc.GetTranscript(context.Background(), "https://vimeo.com/12345", "")
	assert.ErrorIs(t, err, domain.ErrInvalidVideoID)
}

func TestGetTranscript_CachesResult(t *testing.T) {
	fetcher := &mockFetcher{
		fetchTranscriptFn: func(_ context.Context, _, _ string) ([]domain.Cue, error) {
			return []domain.Cue{{Start: 0, Duration: 1, Text: "cached"}}, nil
		},
	}
	svc := NewService(fetcher, newMemoryCache())

	_, err := svc.GetTranscript(context.Background(), "dQw4w9WgXcQ", "")
	require.NoError(t, err)
	_, err = svc.GetTranscript(context.Background(), "dQw4w9WgXcQ", "")
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.fetchCalls)
}

func TestGetTranscript_NegativeCaching(t *testing.T) {
	fetcher := &mockFetcher{
		fetchTranscriptFn: func(_ context.Context, _, _ string) ([]domain.Cue, error) {
			return nil, domain.ErrCaptionsDisabled
		},
	}
	svc := NewService(fetcher, newMemoryCache())

	_, err := svc.GetTranscript(context.Background(), "dQw4w9WgXcQ", "")
	assert.ErrorIs(t, err, domain.ErrCaptionsDisabled)

	// Second request is answered from the negative cache without a fetch.
	_, err = svc.GetTranscript(context.Background(), "dQw4w9WgXcQ", "")
	assert.ErrorIs(t, err, domain.ErrNoTranscript)
	assert.Equal(t, 1, fetcher.fetchCalls)
}

func TestGetTranscript_TransientErrorsNotCached(t *testing.T) {
	fetcher := &mockFetcher{
		fetchTranscriptFn: func(_ context.Context, _, _ string) ([]domain.Cue, error) {
			return nil, errors.New("upstream timeout")
		},
	}
	svc := NewService(fetcher, newMemoryCache())

	_, err := svc.GetTranscript(context.Background(), "dQw4w9WgXcQ", "")
	require.Error(t, err)
	_, err = svc.GetTranscript(context.Background(), "dQw4w9WgXcQ", "")
	require.Error(t, err)

	assert.Equal(t, 2, fetcher.fetchCalls)
}

func TestGetTranscript_BackfillsEarlierTiers(t *testing.T) {
	tier1 := newMemoryCache()
	tier2 := newMemoryCache()
	tier2.SetTranscript(context.Background(), "dQw4w9WgXcQ", "", sampleTranscript("dQw4w9WgXcQ"))

	fetcher := &mockFetcher{}
	svc := NewService(fetcher, tier1, tier2)

	tr, err := svc.GetTranscript(context.Background(), "dQw4w9WgXcQ", "")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", tr.VideoID)
	assert.Equal(t, 0, fetcher.fetchCalls)

	_, ok := tier1.GetTranscript(context.Background(), "dQw4w9WgXcQ", "")
	assert.True(t, ok)
}

func TestGetLanguages_ListsAndCaches(t *testing.T) {
	fetcher := &mockFetcher{
		listTracksFn: func(_ context.Context, videoID string) ([]domain.CaptionTrack, error) {
			assert.Equal(t, "dQw4w9WgXcQ", videoID)
			return []domain.CaptionTrack{
				{LanguageCode: "en", LanguageName: "English"},
				{LanguageCode: "en", LanguageName: "English (auto-generated)", AutoGenerated: true},
			}, nil
		},
	}
	svc := NewService(fetcher, newMemoryCache())

	list, err := svc.GetLanguages(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", list.VideoID)
	require.Len(t, list.Languages, 2)
	assert.Equal(t, "English", list.Languages[0].LanguageName)
	assert.False(t, list.Languages[0].AutoGenerated)
	assert.True(t, list.Languages[1].AutoGenerated)

	_, err = svc.GetLanguages(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.listCalls)
}

func TestGetLanguages_InvalidInput(t *testing.T) {
	svc := NewService(&mockFetcher{}, newMemoryCache())

	_, err := svc.GetLanguages(context.Background(), "not a url")
	assert.ErrorIs(t, err, domain.ErrInvalidVideoID)
}

func TestGetLanguages_UpstreamError(t *testing.T) {
	upstreamErr := errors.New("boom")
	fetcher := &mockFetcher{
		listTracksFn: func(_ context.Context, _ string) ([]domain.CaptionTrack, error) {
			return nil, upstreamErr
		},
	}
	svc := NewService(fetcher, newMemoryCache())

	_, err := svc.GetLanguages(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, upstreamErr)
}
