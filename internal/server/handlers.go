package server

import (
	"errors"
	"fmt"

	"github.com/harshanmathew/Youtube/internal/domain"
	apperrors "github.com/harshanmathew/Youtube/internal/errors"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(200, map[string]any{
		"message": "Welcome to YouTube Transcript API",
		"endpoints": map[string]string{
			"/transcript": "GET - Fetch transcript (params: url, language)",
			"/languages":  "GET - Get available languages (params: url)",
		},
	})
}

func (s *Server) handleTranscript(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		return apperrors.ValidationError("url query parameter is required")
	}
	language := c.QueryParam("language")

	ctx := c.Request().Context()
	transcript, err := s.transcripts.GetTranscript(ctx, url, language)
	if err != nil {
		return transcriptError(err, url, language)
	}

	if err := c.JSON(200, transcript); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleLanguages(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		return apperrors.ValidationError("url query parameter is required")
	}

	ctx := c.Request().Context()
	languages, err := s.transcripts.GetLanguages(ctx, url)
	if err != nil {
		return transcriptError(err, url, "")
	}

	if err := c.JSON(200, languages); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// transcriptError maps domain errors to structured HTTP errors.
func transcriptError(err error, url, language string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidVideoID):
		return apperrors.ValidationError("invalid YouTube URL or video ID").
			WithField("url", url)
	case errors.Is(err, domain.ErrLanguageNotAvailable):
		return apperrors.NotFoundError("no transcript available in the requested language").
			WithField("url", url).
			WithField("language", language)
	case errors.Is(err, domain.ErrNoTranscript),
		errors.Is(err, domain.ErrCaptionsDisabled),
		errors.Is(err, domain.ErrVideoUnavailable):
		return apperrors.NotFoundError("no transcript available for this video").
			WithField("url", url)
	default:
		return apperrors.ExternalError("failed to fetch transcript data", err).
			WithField("url", url)
	}
}
