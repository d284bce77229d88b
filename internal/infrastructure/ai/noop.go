package ai

import (
	"context"
	"fmt"

	"github.com/nannytime/nannytime-api/internal/core/ports"
)

// NoopSummarizer is used when no Gemini API key is configured. It always
// errors, which lands every caller on the static fallback text.
type NoopSummarizer struct{}

func (NoopSummarizer) Summarize(context.Context, ports.SummaryInput) (string, error) {
	return "", fmt.Errorf("summary generation disabled")
}
