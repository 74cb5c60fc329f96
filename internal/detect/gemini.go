package detect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jonathan/video-analyzer/internal/types"
)

// defaultGeminiModel is the model used for authorship scoring.
const defaultGeminiModel = "gemini-2.0-flash"

// verdictSchema constrains the model's JSON output before it is trusted.
const verdictSchema = `{
  "type": "object",
  "required": ["ai_probability", "confidence"],
  "properties": {
    "ai_probability": {"type": "number", "minimum": 0, "maximum": 1},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "reasoning": {"type": "string"}
  }
}`

// GeminiDetector is the primary, hosted detector.
type GeminiDetector struct {
	client *genai.Client
	model  string
	schema *gojsonschema.Schema
}

// NewGeminiDetector creates the hosted detector.
func NewGeminiDetector(ctx context.Context, apiKey string) (*GeminiDetector, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(verdictSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile verdict schema: %w", err)
	}

	return &GeminiDetector{
		client: client,
		model:  defaultGeminiModel,
		schema: schema,
	}, nil
}

// Name identifies the hosted method tag.
func (d *GeminiDetector) Name() string { return "gemini" }

// geminiVerdict is the model's JSON output shape.
type geminiVerdict struct {
	AIProbability float64 `json:"ai_probability"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning,omitempty"`
}

// Detect asks Gemini for an authorship score in strict JSON.
// A rate-limit response is surfaced as ErrRateLimited so the chain can
// distinguish it from a generic failure.
func (d *GeminiDetector) Detect(ctx context.Context, text string) (types.AIVerdict, error) {
	model := d.client.GenerativeModel(d.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildDetectionPrompt(text)))
	if err != nil {
		if isRateLimitError(err) {
			return types.AIVerdict{}, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return types.AIVerdict{}, fmt.Errorf("failed to generate verdict: %w", err)
	}

	raw, err := extractTextFromResponse(resp)
	if err != nil {
		return types.AIVerdict{}, err
	}
	raw = cleanJSONBlock(raw)

	docLoader := gojsonschema.NewStringLoader(raw)
	result, err := d.schema.Validate(docLoader)
	if err != nil {
		return types.AIVerdict{}, fmt.Errorf("failed to validate verdict JSON: %w", err)
	}
	if !result.Valid() {
		return types.AIVerdict{}, fmt.Errorf("verdict JSON failed schema validation: %v", result.Errors())
	}

	var v geminiVerdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return types.AIVerdict{}, fmt.Errorf("failed to parse verdict JSON: %w", err)
	}

	classification := types.ClassificationHuman
	if v.AIProbability > 0.5 {
		classification = types.ClassificationAI
	}

	return types.AIVerdict{
		Probability:    v.AIProbability,
		Classification: classification,
		Confidence:     v.Confidence,
		Method:         d.Name(),
	}, nil
}

// Close releases resources held by the client.
func (d *GeminiDetector) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}

// buildDetectionPrompt constructs the scoring prompt for one text span.
func buildDetectionPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("You are a detector of AI-generated speech transcripts. ")
	sb.WriteString("Estimate the probability that the following transcript excerpt was written by an AI text generator rather than spoken spontaneously by a human.\n\n")
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString("{\n  \"ai_probability\": number, // 0.0-1.0 (required)\n  \"confidence\": number, // 0.0-1.0 (required)\n  \"reasoning\": string // one short sentence\n}\n\n")
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Judge only from the text, do not invent context.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")
	sb.WriteString("Transcript excerpt:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

// isRateLimitError reports whether the API error is a quota/rate signal.
func isRateLimitError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429
	}
	return strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "quota")
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
