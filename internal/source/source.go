// Package source validates submitted video links against the accepted
// source-link grammar and extracts video identifiers.
package source

import (
	"fmt"
	"regexp"
	"strings"
)

// ErrUnsupportedURL is returned for URLs that do not match any accepted
// link shape.
type ErrUnsupportedURL struct {
	URL string
}

func (e *ErrUnsupportedURL) Error() string {
	return fmt.Sprintf("unsupported video URL: %s", e.URL)
}

// Accepted link shapes. The video id is one-or-more word/hyphen characters.
var linkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://(www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`^https://youtu\.be/[\w-]+`),
	regexp.MustCompile(`^https://(www\.)?youtube\.com/embed/[\w-]+`),
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([\w-]+)`),
	regexp.MustCompile(`youtu\.be/([\w-]+)`),
	regexp.MustCompile(`/embed/([\w-]+)`),
}

// Validate checks a submitted URL against the accepted link shapes.
// An empty or unrecognized URL is rejected.
func Validate(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return &ErrUnsupportedURL{URL: rawURL}
	}
	for _, pattern := range linkPatterns {
		if pattern.MatchString(trimmed) {
			return nil
		}
	}
	return &ErrUnsupportedURL{URL: rawURL}
}

// VideoID extracts the video identifier from an accepted URL.
// Returns false for URLs that fail the grammar.
func VideoID(rawURL string) (string, bool) {
	if err := Validate(rawURL); err != nil {
		return "", false
	}
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}
