package types

// Classification labels for an AI-authorship verdict.
const (
	ClassificationHuman        = "human"
	ClassificationAI           = "ai"
	ClassificationShortText    = "insufficient_text"
	ClassificationError        = "error"
)

// AIVerdict is the output of AI-authorship detection for one transcript
// segment. Probability and Confidence are in [0,1]. Method identifies which
// detection strategy produced the verdict (e.g. "gemini", "heuristic").
type AIVerdict struct {
	Probability    float64 `json:"probability"`
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
	Method         string  `json:"method"`
}

// IsAI reports whether the verdict classified the text as AI-authored.
func (v AIVerdict) IsAI() bool {
	return v.Classification == ClassificationAI
}
