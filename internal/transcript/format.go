package transcript

import (
	"fmt"

	"github.com/harshanmathew/Youtube/internal/domain"
)

// Format converts raw cues into a client-facing transcript. Timestamps are
// rendered as "[MM:SS]" from the whole-second cue start; minutes are not
// wrapped at the hour, so "[75:03]" is valid.
func Format(videoID string, cues []domain.Cue) *domain.Transcript {
	entries := make([]domain.TranscriptEntry, 0, len(cues))
	for _, cue := range cues {
		entries = append(entries, domain.TranscriptEntry{
			Timestamp: formatTimestamp(cue.Start),
			Text:      cue.Text,
			Start:     cue.Start,
			Duration:  cue.Duration,
		})
	}
	return &domain.Transcript{
		VideoID: videoID,
		Entries: entries,
	}
}

func formatTimestamp(start float64) string {
	total := int(start)
	return fmt.Sprintf("[%02d:%02d]", total/60, total%60)
}
