// Package vision provides mention-source implementations for the extractor:
// a Gemini-backed identifier and a static one for tests and the mock backend
// flag. The implementation is chosen once at construction.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"google.golang.org/genai"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

const identifyPrompt = `Identify real-world places (restaurants, cafes, parks, landmarks, shops, museums) that are visible or referenced in this photo. Only include places you can actually name. For each place report its name, a one-sentence description of the evidence, and your confidence between 0 and 1.`

// GeminiSource identifies places in images through the Gemini API.
type GeminiSource struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiSource creates a Gemini-backed vision source.
func NewGeminiSource(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiSource, error) {
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}
	model = strings.TrimPrefix(model, "models/")

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiSource{client: client, model: model, logger: logger}, nil
}

// Identify implements extraction.VisionSource.
func (g *GeminiSource) Identify(ctx context.Context, image []byte) ([]models.VisionFinding, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: identifyPrompt},
				{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: image}},
			},
		},
	}

	temperature := float32(0.1)
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  1000,
		ResponseMIMEType: "application/json",
		ResponseSchema:   findingSchema(),
	}

	var resp *genai.GenerateContentResponse
	err := retry.Do(
		func() error {
			var genErr error
			resp, genErr = g.client.Models.GenerateContent(ctx, g.model, contents, genConfig)
			if genErr != nil {
				if isTransient(genErr) {
					g.logger.Warn("gemini transient error, retrying", "error", genErr)
					return genErr
				}
				return retry.Unrecoverable(genErr)
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.BackOffDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini identify: %w", err)
	}

	return parseFindings(resp)
}

func findingSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {
					Type:        genai.TypeString,
					Description: "The place's real-world name",
				},
				"description": {
					Type:        genai.TypeString,
					Description: "One sentence of supporting evidence",
				},
				"confidence": {
					Type:        genai.TypeNumber,
					Description: "Confidence between 0 and 1",
				},
			},
			Required: []string{"name"},
		},
	}
}

func parseFindings(resp *genai.GenerateContentResponse) ([]models.VisionFinding, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil, fmt.Errorf("no content in gemini response")
	}
	text := content.Parts[0].Text
	if text == "" {
		return nil, fmt.Errorf("empty text in gemini response")
	}

	var findings []models.VisionFinding
	if err := json.Unmarshal([]byte(text), &findings); err != nil {
		return nil, fmt.Errorf("failed to parse gemini findings: %w", err)
	}
	return findings, nil
}

func isTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{"rate limit", "quota", "timeout", "deadline", "unavailable", "internal server error", "502", "503", "504"} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
