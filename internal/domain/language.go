package domain

// CaptionTrack describes one caption track offered by the upstream player.
type CaptionTrack struct {
	LanguageCode  string
	LanguageName  string
	BaseURL       string
	AutoGenerated bool
}

// LanguageInfo is the client-facing description of an available track.
type LanguageInfo struct {
	LanguageCode  string `json:"language_code"`
	LanguageName  string `json:"language_name"`
	AutoGenerated bool   `json:"auto_generated,omitempty"`
}

// LanguageList is the full set of available transcript languages for a video.
type LanguageList struct {
	VideoID   string         `json:"video_id"`
	Languages []LanguageInfo `json:"available_languages"`
}
