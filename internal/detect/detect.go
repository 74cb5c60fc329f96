// Package detect scores text spans for AI authorship. Detectors are tried
// in a fixed priority order; the chain degrades to a local heuristic rather
// than surfacing detector failures to its callers.
package detect

import (
	"context"
	"errors"

	"github.com/jonathan/video-analyzer/internal/types"
)

// ErrRateLimited is the explicit rate-limit signal from a hosted detector.
// It is always eligible for fallback to the next detector in the chain.
var ErrRateLimited = errors.New("detector rate limited")

// Detector scores one text span for AI authorship.
type Detector interface {
	// Name identifies the detection method; it appears as the verdict's
	// method tag.
	Name() string
	// Detect returns a verdict for the text, or an error when the
	// underlying capability failed.
	Detect(ctx context.Context, text string) (types.AIVerdict, error)
}
