package transcribe

import (
	"encoding/json"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verboseResponse builds an AudioResponse from the wire format, matching
// what the Whisper API actually returns.
func verboseResponse(t *testing.T, raw string) *openai.AudioResponse {
	t.Helper()
	var resp openai.AudioResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return &resp
}

func TestSegmentsFromResponse(t *testing.T) {
	resp := verboseResponse(t, `{
		"task": "transcribe",
		"language": "en",
		"duration": 10.0,
		"text": "hello world. goodbye now.",
		"segments": [
			{"id": 0, "start": 0.0, "end": 4.0, "text": " hello world."},
			{"id": 1, "start": 4.0, "end": 9.5, "text": " goodbye now."}
		],
		"words": [
			{"word": "hello", "start": 0.2, "end": 0.8},
			{"word": "world", "start": 0.9, "end": 1.4},
			{"word": "goodbye", "start": 4.1, "end": 4.9},
			{"word": "now", "start": 5.0, "end": 5.3}
		]
	}`)

	segments := segmentsFromResponse(resp)

	require.Len(t, segments, 2)
	assert.Equal(t, "hello world.", segments[0].Text)
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 4.0, segments[0].End)
	require.Len(t, segments[0].Words, 2)
	assert.Equal(t, "hello", segments[0].Words[0].Word)

	assert.Equal(t, "goodbye now.", segments[1].Text)
	require.Len(t, segments[1].Words, 2)
	assert.Equal(t, "goodbye", segments[1].Words[0].Word)
}

func TestSegmentsFromResponse_TextOnlyFallback(t *testing.T) {
	resp := verboseResponse(t, `{"duration": 3.5, "text": "just plain text"}`)

	segments := segmentsFromResponse(resp)

	require.Len(t, segments, 1)
	assert.Equal(t, "just plain text", segments[0].Text)
	assert.Equal(t, 3.5, segments[0].End)
}

func TestSegmentsFromResponse_Empty(t *testing.T) {
	resp := verboseResponse(t, `{"duration": 0, "text": ""}`)

	assert.Empty(t, segmentsFromResponse(resp))
}

func TestNewWhisperTranscriber_RequiresAPIKey(t *testing.T) {
	_, err := NewWhisperTranscriber("")
	assert.Error(t, err)
}
