package domain

import "context"

// --- Model types ---

// Cue is a single raw caption cue as delivered by the upstream track.
type Cue struct {
	Start    float64
	Duration float64
	Text     string
}

// TranscriptEntry is a formatted transcript line as served to clients.
type TranscriptEntry struct {
	Timestamp string  `json:"timestamp"`
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	Duration  float64 `json:"duration"`
}

// Transcript is the full transcript of a video in one language.
type Transcript struct {
	VideoID string            `json:"video_id"`
	Entries []TranscriptEntry `json:"transcript"`
}

// --- Interfaces ---

// TranscriptFetcher retrieves caption data from the upstream video platform.
type TranscriptFetcher interface {
	// FetchTranscript returns the raw cues for videoID. An empty language
	// selects the default track.
	FetchTranscript(ctx context.Context, videoID, language string) ([]Cue, error)

	// ListTracks returns the caption tracks available for videoID.
	ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error)
}

// TranscriptCache stores formatted transcripts and language lists.
// Implementations must degrade gracefully: a lookup failure is a miss,
// a store failure is silent.
type TranscriptCache interface {
	GetTranscript(ctx context.Context, videoID, language string) (*Transcript, bool)
	SetTranscript(ctx context.Context, videoID, language string, t *Transcript)

	GetLanguages(ctx context.Context, videoID string) (*LanguageList, bool)
	SetLanguages(ctx context.Context, videoID string, l *LanguageList)

	// Negative entries record that a video has no transcript, so repeat
	// requests do not hammer the upstream.
	IsMissing(ctx context.Context, videoID, language string) bool
	SetMissing(ctx context.Context, videoID, language string)
}
