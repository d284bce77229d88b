package ports

import (
	"context"
	"time"

	"github.com/nannytime/nannytime-api/internal/core/domain"
)

// PayStub is the computed earnings view for one reporting period.
type PayStub struct {
	Period         domain.Period
	Hours          float64
	Earnings       float64
	ShiftCount     int
	HourlyRate     float64
	Currency       string
	TargetHours    float64
	RemainingHours float64
	// Summary is a short encouragement blurb. Always present: generation
	// failures fall back to a fixed string, never an error.
	Summary string
}

// PayrollService turns the shift history into a pay stub.
type PayrollService interface {
	GetPayStub(ctx context.Context, userID string, period domain.Period, now time.Time) (*PayStub, error)
	// PrewarmSummary computes and caches the summary blurb ahead of the next
	// pay-stub view. Used by the background prewarm workers after clock-out.
	PrewarmSummary(ctx context.Context, userID string, period domain.Period) error
}

// PrewarmJob asks the background workers to warm a user's summary cache.
type PrewarmJob struct {
	UserID string
	Period domain.Period
}

// SummaryPrewarmer accepts prewarm jobs for asynchronous processing.
type SummaryPrewarmer interface {
	Enqueue(job PrewarmJob)
}
