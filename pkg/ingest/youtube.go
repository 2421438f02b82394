package ingest

import (
	"fmt"
	"regexp"
)

// URL patterns tried in order: canonical watch URL / short URL / embed URL,
// then the /v/ form, then a query param anywhere in a watch URL.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#/]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&\n?#/]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// bareVideoID matches an input that is already a video ID rather than a URL.
var bareVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{8,16}$`)

// ExtractVideoID pulls the stable video identifier out of a YouTube URL.
// Inputs that already look like a bare ID pass through unchanged.
func ExtractVideoID(url string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}

	if bareVideoID.MatchString(url) {
		return url, nil
	}

	return "", fmt.Errorf("%w: %s", ErrInvalidReference, url)
}
