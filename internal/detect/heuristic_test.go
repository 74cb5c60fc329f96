package detect

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/video-analyzer/internal/types"
)

func TestHeuristicDetector_DisclosurePhrase(t *testing.T) {
	d := NewHeuristicDetector()

	verdict, err := d.Detect(context.Background(),
		"As an AI, I do not have personal experiences. However, it's important to note that results may vary.")
	require.NoError(t, err)

	assert.Greater(t, verdict.Probability, 0.0)
	assert.Equal(t, "heuristic", verdict.Method)
	assert.LessOrEqual(t, verdict.Probability, 1.0)
}

func TestHeuristicDetector_HumanText(t *testing.T) {
	d := NewHeuristicDetector()

	verdict, err := d.Detect(context.Background(),
		"So yeah, we drove up there on Saturday. Traffic was awful. Totally worth it though, the view was insane.")
	require.NoError(t, err)

	assert.Equal(t, types.ClassificationHuman, verdict.Classification)
	assert.LessOrEqual(t, verdict.Probability, 0.5)
}

func TestHeuristicDetector_AllSignalsCappedAtOne(t *testing.T) {
	d := NewHeuristicDetector()

	// Disclosure phrase + one very long sentence + heavy repetition.
	text := "It's important to note that " + strings.Repeat("the same words repeat and repeat here ", 10)

	verdict, err := d.Detect(context.Background(), text)
	require.NoError(t, err)

	assert.LessOrEqual(t, verdict.Probability, 1.0)
	assert.Equal(t, types.ClassificationAI, verdict.Classification)
}

func TestHeuristicDetector_NeverFails(t *testing.T) {
	d := NewHeuristicDetector()

	for _, text := range []string{"", " ", "...", "!!!", "one"} {
		verdict, err := d.Detect(context.Background(), text)
		require.NoError(t, err)
		assert.NotEmpty(t, verdict.Classification)
	}
}

func TestAvgSentenceLength(t *testing.T) {
	assert.Equal(t, 0.0, avgSentenceLength(""))
	assert.InDelta(t, 2.0, avgSentenceLength("two words. also two!"), 1e-9)
}

func TestRepetitionRatio(t *testing.T) {
	assert.Equal(t, 0.0, repetitionRatio(""))
	assert.InDelta(t, 1.0, repetitionRatio("all distinct words"), 1e-9)
	assert.InDelta(t, 3.0, repetitionRatio("go go go"), 1e-9)
}
