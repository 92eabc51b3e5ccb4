package transcript

import (
	"context"
	"errors"
	"fmt"

	"github.com/harshanmathew/Youtube/internal/domain"
	"github.com/harshanmathew/Youtube/internal/logging"
	"github.com/harshanmathew/Youtube/internal/metrics"
	"github.com/harshanmathew/Youtube/internal/youtube"
)

// Service orchestrates transcript retrieval: video ID resolution, cache
// lookup across tiers, upstream fetch, and formatting.
type Service struct {
	fetcher domain.TranscriptFetcher
	caches  []domain.TranscriptCache
}

// NewService creates a Service. Caches are consulted in order; a hit in a
// later tier back-fills the earlier ones.
func NewService(fetcher domain.TranscriptFetcher, caches ...domain.TranscriptCache) *Service {
	return &Service{
		fetcher: fetcher,
		caches:  caches,
	}
}

// GetTranscript resolves input to a video ID and returns its formatted
// transcript. An empty language selects the default caption track.
func (s *Service) GetTranscript(ctx context.Context, input, language string) (*domain.Transcript, error) {
	videoID, err := youtube.ResolveVideoID(input)
	if err != nil {
		return nil, err
	}

	for i, cache := range s.caches {
		if t, ok := cache.GetTranscript(ctx, videoID, language); ok {
			s.backfillTranscript(ctx, i, videoID, language, t)
			return t, nil
		}
		if cache.IsMissing(ctx, videoID, language) {
			return nil, domain.ErrNoTranscript
		}
	}
	metrics.CacheMissesTotal.WithLabelValues("transcript").Inc()
	logging.WithVideo(videoID).Debug("Fetching transcript from upstream", "language", language)

	cues, err := s.fetcher.FetchTranscript(ctx, videoID, language)
	if err != nil {
		if isPermanentMiss(err) {
			for _, cache := range s.caches {
				cache.SetMissing(ctx, videoID, language)
			}
		}
		return nil, err
	}

	t := Format(videoID, cues)
	for _, cache := range s.caches {
		cache.SetTranscript(ctx, videoID, language, t)
	}
	return t, nil
}

// GetLanguages resolves input to a video ID and returns its available
// transcript languages.
func (s *Service) GetLanguages(ctx context.Context, input string) (*domain.LanguageList, error) {
	videoID, err := youtube.ResolveVideoID(input)
	if err != nil {
		return nil, err
	}

	for i, cache := range s.caches {
		if l, ok := cache.GetLanguages(ctx, videoID); ok {
			s.backfillLanguages(ctx, i, videoID, l)
			return l, nil
		}
	}
	metrics.CacheMissesTotal.WithLabelValues("languages").Inc()

	tracks, err := s.fetcher.ListTracks(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list caption tracks: %w", err)
	}

	l := &domain.LanguageList{
		VideoID:   videoID,
		Languages: make([]domain.LanguageInfo, 0, len(tracks)),
	}
	for _, t := range tracks {
		l.Languages = append(l.Languages, domain.LanguageInfo{
			LanguageCode:  t.LanguageCode,
			LanguageName:  t.LanguageName,
			AutoGenerated: t.AutoGenerated,
		})
	}

	for _, cache := range s.caches {
		cache.SetLanguages(ctx, videoID, l)
	}
	return l, nil
}

func (s *Service) backfillTranscript(ctx context.Context, hitTier int, videoID, language string, t *domain.Transcript) {
	for j := 0; j < hitTier; j++ {
		s.caches[j].SetTranscript(ctx, videoID, language, t)
	}
}

func (s *Service) backfillLanguages(ctx context.Context, hitTier int, videoID string, l *domain.LanguageList) {
	for j := 0; j < hitTier; j++ {
		s.caches[j].SetLanguages(ctx, videoID, l)
	}
}

// isPermanentMiss reports whether a fetch failure is a stable property of the
// video worth caching negatively, as opposed to a transient upstream failure.
func isPermanentMiss(err error) bool {
	return errors.Is(err, domain.ErrCaptionsDisabled) ||
		errors.Is(err, domain.ErrVideoUnavailable) ||
		errors.Is(err, domain.ErrLanguageNotAvailable)
}
