package ports

import (
	"context"

	"github.com/nannytime/nannytime-api/internal/core/domain"
)

// SummaryInput carries the aggregate figures the blurb is written from.
type SummaryInput struct {
	Hours      float64
	Earnings   float64
	Currency   string
	ShiftCount int
	Period     domain.Period
}

// Summarizer produces a short congratulatory note for the pay stub. It is a
// pluggable capability: callers must treat any error as "use the fallback
// text" and never let it affect the rest of the pay stub.
type Summarizer interface {
	Summarize(ctx context.Context, input SummaryInput) (string, error)
}

// SummaryCache stores generated blurbs per user and period.
type SummaryCache interface {
	Get(ctx context.Context, userID string, period domain.Period) (string, error)
	Set(ctx context.Context, userID string, period domain.Period, text string) error
	// Clear drops every cached entry for the user (called on sign-out).
	Clear(ctx context.Context, userID string) error
}
