package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nannytime/nannytime-api/internal/core/ports"
)

const defaultModel = "gemini-3-flash-preview"

// GeminiSummarizer generates the pay-stub blurb with Google's Gemini API.
// Any failure is returned to the caller, which substitutes the static
// fallback text; this type never needs to be reliable.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

// NewGeminiSummarizer creates a summarizer backed by the Gemini API.
func NewGeminiSummarizer(ctx context.Context, apiKey, model string) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiSummarizer{client: client, model: model}, nil
}

// Summarize asks the model for a short, cheerful pay-stub note.
func (s *GeminiSummarizer) Summarize(ctx context.Context, in ports.SummaryInput) (string, error) {
	prompt := fmt.Sprintf(
		"You are a helpful payroll assistant.\n"+
			"The nanny worked %.2f hours this %s.\n"+
			"She earned %s %.2f.\n"+
			"Number of shifts: %d.\n"+
			"Write a very short, cheerful, encouraging note (max 2 sentences) for her pay stub.",
		in.Hours, in.Period, in.Currency, in.Earnings, in.ShiftCount,
	)

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty summary response")
	}
	return text, nil
}
