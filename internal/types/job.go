// Package types provides type definitions for structured data used throughout the video-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// JobState represents the lifecycle state of an analysis job.
type JobState string

const (
	// JobStateProcessing is implicit: a job with no terminal record is processing.
	JobStateProcessing JobState = "processing"
	// JobStateCompleted is terminal; the result payload is populated.
	JobStateCompleted JobState = "completed"
	// JobStateFailed is terminal; the error description is populated.
	JobStateFailed JobState = "failed"
)

// IsTerminal reports whether the state is completed or failed.
func (s JobState) IsTerminal() bool {
	return s == JobStateCompleted || s == JobStateFailed
}

// Job represents one submitted analysis request. The ID is minted at
// submission and never changes; the orchestrator owns the job exclusively
// while it runs in the background.
type Job struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"source_url"`
	SubmittedAt time.Time `json:"submitted_at"`
	State       JobState  `json:"state"`
}

// Word is a word-level sub-span of a transcript segment.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TranscriptSegment is a contiguous span of transcribed speech.
// Segments are produced once by transcription and are read-only afterward,
// except for the verdict attached during annotation.
type TranscriptSegment struct {
	Text    string    `json:"text"`
	Start   float64   `json:"start"`
	End     float64   `json:"end"`
	Speaker string    `json:"speaker,omitempty"`
	Words   []Word    `json:"words,omitempty"`
	Verdict *AIVerdict `json:"ai_verdict,omitempty"`
}
