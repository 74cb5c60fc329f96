// Package annotate applies the AI-detection chain to every transcript
// segment, strictly in order, producing a combined result even when
// individual detector calls degrade.
package annotate

import (
	"context"
	"time"

	"github.com/jonathan/video-analyzer/internal/types"
)

// ChainDetector is the degrade-only detection entry point: it yields a
// verdict for any input and never returns an error.
type ChainDetector interface {
	Detect(ctx context.Context, text string) types.AIVerdict
}

// Annotator attaches an AI verdict to each transcript segment.
// Segments are processed strictly sequentially with a fixed pacing delay
// between detector calls to stay inside the hosted detector's quota. The
// delay is backpressure, not correctness; zero is valid for tests.
type Annotator struct {
	chain ChainDetector
	pause time.Duration
}

// New creates an annotator over the given detection chain.
func New(chain ChainDetector, pause time.Duration) *Annotator {
	return &Annotator{chain: chain, pause: pause}
}

// Annotate returns a new slice with the same segments in the same order,
// each carrying a verdict. Output count always equals input count: a
// segment is never dropped.
func (a *Annotator) Annotate(ctx context.Context, segments []types.TranscriptSegment) []types.TranscriptSegment {
	if len(segments) == 0 {
		return segments
	}

	annotated := make([]types.TranscriptSegment, len(segments))
	for i, seg := range segments {
		if i > 0 && a.pause > 0 {
			select {
			case <-time.After(a.pause):
			case <-ctx.Done():
				// Remaining segments still get a verdict; the chain
				// answers a cancelled context with an error verdict.
			}
		}

		verdict := a.chain.Detect(ctx, seg.Text)
		seg.Verdict = &verdict
		annotated[i] = seg
	}
	return annotated
}
