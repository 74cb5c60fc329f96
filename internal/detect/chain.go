package detect

import (
	"context"
	"errors"
	"log"

	"github.com/jonathan/video-analyzer/internal/types"
)

// Chain orders detectors by priority and falls through on failure.
// Detect never returns an error past its own boundary: with the heuristic
// detector wired last, the worst case is a low-confidence heuristic verdict.
type Chain struct {
	detectors []Detector
	minChars  int
}

// NewChain builds a chain over detectors in priority order.
// minChars is the minimum text length worth scoring; shorter spans
// short-circuit with insufficient_text and no detector call.
func NewChain(minChars int, detectors ...Detector) *Chain {
	return &Chain{detectors: detectors, minChars: minChars}
}

// Detect scores the text with the first detector that succeeds.
// Any detector failure, including the explicit rate-limit signal, is
// eligible for fallback to the next detector. Only when every detector
// fails does the verdict carry the error classification.
func (c *Chain) Detect(ctx context.Context, text string) types.AIVerdict {
	if len(text) < c.minChars {
		return types.AIVerdict{
			Probability:    0,
			Classification: types.ClassificationShortText,
			Confidence:     1.0,
			Method:         "none",
		}
	}

	for _, d := range c.detectors {
		verdict, err := d.Detect(ctx, text)
		if err == nil {
			return verdict
		}
		if !fallbackEligible(err) {
			break
		}
		log.Printf("[detect] %s detector failed, falling back: %v", d.Name(), err)
	}

	return types.AIVerdict{
		Probability:    0,
		Classification: types.ClassificationError,
		Confidence:     0,
		Method:         "none",
	}
}

// fallbackEligible decides whether a detector failure may be retried via
// the next strategy. Rate limiting and every other capability failure fall
// through; only a cancelled context stops the chain.
func fallbackEligible(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}
