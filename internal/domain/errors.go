package domain

import "errors"

var (
	ErrInvalidVideoID       = errors.New("invalid YouTube URL or video ID")
	ErrVideoUnavailable     = errors.New("video unavailable")
	ErrCaptionsDisabled     = errors.New("captions disabled for this video")
	ErrNoTranscript         = errors.New("no transcript available for this video")
	ErrLanguageNotAvailable = errors.New("requested transcript language not available")
)
