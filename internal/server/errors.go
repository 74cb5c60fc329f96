// Package server provides the HTTP REST API for the video analyzer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/video-analyzer/internal/source"
	"github.com/jonathan/video-analyzer/internal/store"
)

// ErrInvalidInput indicates a malformed or rejected submission.
type ErrInvalidInput struct {
	Field   string
	Message string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid input: %s - %s", e.Field, e.Message)
}

// ErrJobNotFound indicates no terminal record exists for the job id.
type ErrJobNotFound struct {
	JobID string
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job result not found: %s", e.JobID)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var invalidInput *ErrInvalidInput
	var notFound *ErrJobNotFound
	var unsupported *source.ErrUnsupportedURL

	switch {
	case errors.As(err, &invalidInput), errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
