// Package transcribe converts an audio artifact into an ordered transcript
// via the hosted Whisper API.
package transcribe

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/jonathan/video-analyzer/internal/types"
)

// Transcriber is the boundary interface for the speech-to-text capability:
// audio file in, ordered transcript segments out.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]types.TranscriptSegment, error)
}

// WhisperTranscriber calls the hosted Whisper API.
type WhisperTranscriber struct {
	client *openai.Client
	model  string
}

// NewWhisperTranscriber creates a transcriber with the given API key.
func NewWhisperTranscriber(apiKey string) (*WhisperTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	return &WhisperTranscriber{
		client: openai.NewClient(apiKey),
		model:  openai.Whisper1,
	}, nil
}

// Transcribe sends the audio file to Whisper and converts the verbose JSON
// response into transcript segments with word-level timings.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) ([]types.TranscriptSegment, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
			openai.TranscriptionTimestampGranularityWord,
		},
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("whisper transcription failed: %w", err)
	}

	segments := segmentsFromResponse(&resp)
	log.Printf("[transcribe] Transcribed %s: %d segments, %.1fs of audio", audioPath, len(segments), resp.Duration)
	return segments, nil
}

// segmentsFromResponse converts the Whisper verbose response into ordered
// transcript segments, attaching word timings to the segment whose time
// range contains them.
func segmentsFromResponse(resp *openai.AudioResponse) []types.TranscriptSegment {
	segments := make([]types.TranscriptSegment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		segments = append(segments, types.TranscriptSegment{
			Text:  strings.TrimSpace(seg.Text),
			Start: seg.Start,
			End:   seg.End,
		})
	}

	// Single-segment fallback when the API returned text without segments.
	if len(segments) == 0 && strings.TrimSpace(resp.Text) != "" {
		segments = append(segments, types.TranscriptSegment{
			Text: strings.TrimSpace(resp.Text),
			End:  resp.Duration,
		})
	}

	for _, w := range resp.Words {
		word := types.Word{Word: w.Word, Start: w.Start, End: w.End}
		for i := range segments {
			if w.Start >= segments[i].Start && w.Start < segments[i].End {
				segments[i].Words = append(segments[i].Words, word)
				break
			}
		}
	}

	return segments
}
