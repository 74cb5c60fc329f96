package types

import "time"

// ProcessingSummary aggregates per-segment verdicts for a completed job.
type ProcessingSummary struct {
	TotalSegments   int     `json:"total_segments"`
	AISegments      int     `json:"ai_segments"`
	HumanSegments   int     `json:"human_segments"`
	MeanProbability float64 `json:"mean_ai_probability"`
}

// JobResult is the terminal record of a job. A completed result carries
// artifact references, the annotated transcript, and the processing summary.
// A failed result carries only identity, timestamp, URL, and the error
// description: artifacts produced before the failing stage are not
// referenced even though the files remain on disk.
type JobResult struct {
	JobID       string    `json:"job_id"`
	SourceURL   string    `json:"source_url"`
	State       JobState  `json:"state"`
	CompletedAt time.Time `json:"completed_at"`

	PageTitle      string              `json:"page_title,omitempty"`
	ScreenshotPath string              `json:"screenshot_path,omitempty"`
	AudioPath      string              `json:"audio_path,omitempty"`
	Transcript     []TranscriptSegment `json:"transcript,omitempty"`
	Summary        *ProcessingSummary  `json:"processing_summary,omitempty"`

	Error string `json:"error,omitempty"`
}

// Summarize computes the processing summary over annotated segments.
// Segments with insufficient_text or error verdicts count toward the total
// but toward neither the ai nor the human bucket.
func Summarize(segments []TranscriptSegment) ProcessingSummary {
	summary := ProcessingSummary{TotalSegments: len(segments)}
	if len(segments) == 0 {
		return summary
	}

	var sum float64
	for _, seg := range segments {
		if seg.Verdict == nil {
			continue
		}
		sum += seg.Verdict.Probability
		switch seg.Verdict.Classification {
		case ClassificationAI:
			summary.AISegments++
		case ClassificationHuman:
			summary.HumanSegments++
		}
	}
	summary.MeanProbability = sum / float64(len(segments))
	return summary
}
