package detect

import (
	"context"
	"strings"

	"github.com/jonathan/video-analyzer/internal/types"
)

// Heuristic scoring: each triggered signal adds a fixed increment, capped
// at 1.0. Classification is ai iff the capped score exceeds 0.5.
const (
	phraseIncrement     = 0.45
	sentenceIncrement   = 0.30
	repetitionIncrement = 0.30

	longSentenceWords   = 28.0
	repetitionThreshold = 2.2

	// The heuristic is a degraded fallback; its confidence is fixed low.
	heuristicConfidence = 0.4
)

// aiDisclosurePhrases are formulations characteristic of AI-generated
// narration, including explicit self-disclosure.
var aiDisclosurePhrases = []string{
	"as an ai",
	"as a language model",
	"i cannot browse",
	"i don't have personal",
	"it's important to note",
	"it is important to note",
	"in conclusion, it",
	"delve into",
	"in today's fast-paced world",
	"furthermore, it is",
}

// HeuristicDetector is the local fallback detector. It never fails: any
// input yields a verdict, with confidence degraded instead of erroring.
type HeuristicDetector struct{}

// NewHeuristicDetector returns the pattern-based fallback detector.
func NewHeuristicDetector() *HeuristicDetector {
	return &HeuristicDetector{}
}

// Name identifies the heuristic method tag.
func (d *HeuristicDetector) Name() string { return "heuristic" }

// Detect scores the text with a bounded weighted sum over disclosure
// phrasing, average sentence length, and word repetition.
func (d *HeuristicDetector) Detect(_ context.Context, text string) (types.AIVerdict, error) {
	score := 0.0

	lower := strings.ToLower(text)
	for _, phrase := range aiDisclosurePhrases {
		if strings.Contains(lower, phrase) {
			score += phraseIncrement
			break
		}
	}

	if avgSentenceLength(text) > longSentenceWords {
		score += sentenceIncrement
	}

	if repetitionRatio(text) > repetitionThreshold {
		score += repetitionIncrement
	}

	if score > 1.0 {
		score = 1.0
	}

	classification := types.ClassificationHuman
	if score > 0.5 {
		classification = types.ClassificationAI
	}

	return types.AIVerdict{
		Probability:    score,
		Classification: classification,
		Confidence:     heuristicConfidence,
		Method:         d.Name(),
	}, nil
}

// avgSentenceLength returns the mean number of words per sentence.
func avgSentenceLength(text string) float64 {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var count int
	var totalWords int
	for _, s := range sentences {
		words := strings.Fields(s)
		if len(words) == 0 {
			continue
		}
		count++
		totalWords += len(words)
	}
	if count == 0 {
		return 0
	}
	return float64(totalWords) / float64(count)
}

// repetitionRatio returns total words divided by distinct words.
func repetitionRatio(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}
	distinct := make(map[string]struct{}, len(words))
	for _, w := range words {
		distinct[strings.Trim(w, ".,!?;:\"'")] = struct{}{}
	}
	return float64(len(words)) / float64(len(distinct))
}
