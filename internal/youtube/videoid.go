package youtube

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/harshanmathew/Youtube/internal/domain"
)

var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ResolveVideoID extracts the 11-character video ID from a YouTube URL or
// accepts a raw video ID as-is. Supported URL forms:
//
//	https://youtu.be/<id>
//	https://www.youtube.com/watch?v=<id>
//	https://www.youtube.com/embed/<id>
//	https://www.youtube.com/v/<id>
//
// Returns domain.ErrInvalidVideoID for anything else.
func ResolveVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)

	if videoIDPattern.MatchString(input) {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", domain.ErrInvalidVideoID
	}

	var id string
	switch u.Hostname() {
	case "youtu.be", "www.youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
	case "youtube.com", "www.youtube.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"), strings.HasPrefix(u.Path, "/v/"):
			parts := strings.Split(u.Path, "/")
			if len(parts) > 2 {
				id = parts[2]
			}
		}
	}

	if !videoIDPattern.MatchString(id) {
		return "", domain.ErrInvalidVideoID
	}
	return id, nil
}
