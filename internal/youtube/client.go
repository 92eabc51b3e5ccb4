package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/harshanmathew/Youtube/internal/domain"
	"github.com/harshanmathew/Youtube/internal/metrics"
	"github.com/harshanmathew/Youtube/internal/platform/retry"
)

const (
	defaultBaseURL = "https://www.youtube.com"

	// Served pages differ per user agent; a desktop browser UA reliably
	// includes ytInitialPlayerResponse in the page body.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// Watch pages run around 1 MB; anything past this is not the page we want.
	maxResponseBytes = 10 << 20
)

// Client fetches caption tracks and transcript cues from YouTube by scraping
// the watch page's embedded player response, the same metadata the player
// itself uses. There is no official transcript API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	retryPolicy retry.Policy
}

var _ domain.TranscriptFetcher = (*Client)(nil)

// NewClient creates a Client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return newClient(defaultBaseURL, &http.Client{Timeout: timeout})
}

func newClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		retryPolicy: retry.Policy{
			MaxAttempts:    3,
			InitialBackoff: 250 * time.Millisecond,
			MaxBackoff:     2 * time.Second,
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				metrics.UpstreamRetriesTotal.Inc()
				slog.Debug("Retrying upstream fetch", "attempt", attempt, "backoff", backoff, "error", err)
			},
		},
	}
}

// FetchTranscript returns the raw cues for videoID. An empty language selects
// the default track (first manually created track, falling back to the first
// track of any kind).
func (c *Client) FetchTranscript(ctx context.Context, videoID, language string) ([]domain.Cue, error) {
	tracks, err := c.fetchTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, err := selectTrack(tracks, language)
	if err != nil {
		return nil, err
	}

	return c.fetchCues(ctx, track.BaseURL)
}

// ListTracks returns the caption tracks available for videoID.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]domain.CaptionTrack, error) {
	return c.fetchTracks(ctx, videoID)
}

// selectTrack picks the track matching language, or the default track when
// language is empty.
func selectTrack(tracks []domain.CaptionTrack, language string) (domain.CaptionTrack, error) {
	if language != "" {
		for _, t := range tracks {
			if t.LanguageCode == language {
				return t, nil
			}
		}
		return domain.CaptionTrack{}, domain.ErrLanguageNotAvailable
	}

	for _, t := range tracks {
		if !t.AutoGenerated {
			return t, nil
		}
	}
	return tracks[0], nil
}

func (c *Client) fetchTracks(ctx context.Context, videoID string) ([]domain.CaptionTrack, error) {
	tracks, err := retry.Do(ctx, c.retryPolicy, classifyUpstreamError, func() ([]domain.CaptionTrack, error) {
		return c.fetchTracksOnce(ctx, videoID)
	})
	if err != nil {
		var permErr *retry.PermanentError
		if errors.As(err, &permErr) {
			return nil, permErr.Err
		}
		return nil, fmt.Errorf("failed to fetch caption tracks for %s: %w", videoID, err)
	}
	return tracks, nil
}

func (c *Client) fetchTracksOnce(ctx context.Context, videoID string) ([]domain.CaptionTrack, error) {
	start := time.Now()
	body, err := c.get(ctx, c.baseURL+"/watch?v="+url.QueryEscape(videoID))
	observeUpstream("player", start, err)
	if err != nil {
		return nil, err
	}

	pr, err := extractPlayerResponse(body)
	if err != nil {
		return nil, err
	}

	switch pr.PlayabilityStatus.Status {
	case "", "OK", "CONTENT_CHECK_REQUIRED":
	case "LOGIN_REQUIRED", "ERROR", "UNPLAYABLE":
		return nil, domain.ErrVideoUnavailable
	default:
		return nil, domain.ErrVideoUnavailable
	}

	jsonTracks := pr.Captions.Renderer.CaptionTracks
	if len(jsonTracks) == 0 {
		return nil, domain.ErrCaptionsDisabled
	}

	tracks := make([]domain.CaptionTrack, 0, len(jsonTracks))
	for _, jt := range jsonTracks {
		tracks = append(tracks, domain.CaptionTrack{
			LanguageCode:  jt.LanguageCode,
			LanguageName:  jt.displayName(),
			BaseURL:       jt.BaseURL,
			AutoGenerated: jt.Kind == "asr",
		})
	}
	return tracks, nil
}

func (c *Client) fetchCues(ctx context.Context, trackURL string) ([]domain.Cue, error) {
	cues, err := retry.Do(ctx, c.retryPolicy, classifyUpstreamError, func() ([]domain.Cue, error) {
		start := time.Now()
		body, err := c.get(ctx, trackURL)
		observeUpstream("timedtext", start, err)
		if err != nil {
			return nil, err
		}
		return parseTimedText(body)
	})
	if err != nil {
		var permErr *retry.PermanentError
		if errors.As(err, &permErr) {
			return nil, permErr.Err
		}
		return nil, fmt.Errorf("failed to fetch transcript track: %w", err)
	}
	return cues, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	return body, nil
}

// classifyUpstreamError stops retrying once the failure is a property of the
// video rather than of the transport.
func classifyUpstreamError(err error) retry.Action {
	switch {
	case errors.Is(err, domain.ErrVideoUnavailable),
		errors.Is(err, domain.ErrCaptionsDisabled),
		errors.Is(err, domain.ErrLanguageNotAvailable),
		errors.Is(err, domain.ErrNoTranscript):
		return retry.Stop
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retry.Stop
	default:
		return retry.Retry
	}
}

func observeUpstream(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(operation, status).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// --- player response extraction ---

var playerResponseMarker = []byte("ytInitialPlayerResponse")

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		Renderer struct {
			CaptionTracks []captionTrackJSON `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrackJSON struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

func (t captionTrackJSON) displayName() string {
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}
	var b bytes.Buffer
	for _, r := range t.Name.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// extractPlayerResponse locates the embedded ytInitialPlayerResponse JSON in
// a watch page and decodes it. The decoder stops at the end of the JSON
// value, so the trailing script text is ignored.
func extractPlayerResponse(body []byte) (*playerResponse, error) {
	idx := bytes.Index(body, playerResponseMarker)
	if idx < 0 {
		return nil, domain.ErrVideoUnavailable
	}

	rest := body[idx+len(playerResponseMarker):]
	objStart := bytes.IndexByte(rest, '{')
	if objStart < 0 {
		return nil, domain.ErrVideoUnavailable
	}

	var pr playerResponse
	dec := json.NewDecoder(bytes.NewReader(rest[objStart:]))
	if err := dec.Decode(&pr); err != nil {
		return nil, fmt.Errorf("failed to decode player response: %w", err)
	}
	return &pr, nil
}
