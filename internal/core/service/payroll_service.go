package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/nannytime/nannytime-api/internal/api/metrics"
	"github.com/nannytime/nannytime-api/internal/core/domain"
	"github.com/nannytime/nannytime-api/internal/core/ports"
)

// FallbackSummary is served whenever blurb generation fails or is disabled.
const FallbackSummary = "Great work this week! Keep it up!"

// PayrollService assembles pay stubs: period aggregation over the shift
// history plus a short generated blurb, cached per user and period.
type PayrollService struct {
	shifts     ports.ShiftRepository
	profiles   ports.ProfileService
	summarizer ports.Summarizer
	cache      ports.SummaryCache // nil disables caching
	logger     zerolog.Logger
}

func NewPayrollService(
	shifts ports.ShiftRepository,
	profiles ports.ProfileService,
	summarizer ports.Summarizer,
	cache ports.SummaryCache,
	logger zerolog.Logger,
) *PayrollService {
	return &PayrollService{
		shifts:     shifts,
		profiles:   profiles,
		summarizer: summarizer,
		cache:      cache,
		logger:     logger,
	}
}

// GetPayStub computes hours, earnings, and progress for the period
// containing now. A shift-store failure on this read path degrades to an
// empty history (zero totals) rather than failing the view; the summary can
// never fail at all.
func (s *PayrollService) GetPayStub(ctx context.Context, userID string, period domain.Period, now time.Time) (*ports.PayStub, error) {
	metrics.PayStubRequestsTotal.WithLabelValues(string(period)).Inc()

	totals, profile, err := s.periodTotals(ctx, userID, period, now)
	if err != nil {
		return nil, err
	}

	target := domain.TargetHoursWeek
	if period == domain.PeriodMonth {
		target = domain.TargetHoursMonth
	}

	return &ports.PayStub{
		Period:         period,
		Hours:          totals.Hours,
		Earnings:       totals.Earnings,
		ShiftCount:     totals.Count,
		HourlyRate:     profile.HourlyRate,
		Currency:       profile.Currency,
		TargetHours:    target,
		RemainingHours: domain.RemainingToTarget(totals.Hours, period),
		Summary:        s.summary(ctx, userID, period, totals, profile.Currency),
	}, nil
}

// PrewarmSummary regenerates the blurb for the user's current totals and
// overwrites the cache entry. Called from the background workers after
// clock-out; any cached blurb predates the clock-out that queued the job,
// so the summarizer is always consulted, never the cache.
func (s *PayrollService) PrewarmSummary(ctx context.Context, userID string, period domain.Period) error {
	if s.cache == nil || s.summarizer == nil {
		return nil
	}

	totals, profile, err := s.periodTotals(ctx, userID, period, time.Now().UTC())
	if err != nil {
		return err
	}

	text, err := s.generate(ctx, period, totals, profile.Currency)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, userID, period, text)
}

// periodTotals loads the inputs for one period: the aggregated shift totals
// and the profile carrying the rate. A shift-store failure degrades to an
// empty history; a profile failure propagates.
func (s *PayrollService) periodTotals(ctx context.Context, userID string, period domain.Period, now time.Time) (domain.PayrollTotals, *domain.Profile, error) {
	shifts, err := s.shifts.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("pay stub shift fetch failed, degrading to empty")
		shifts = nil
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return domain.PayrollTotals{}, nil, err
	}

	return domain.Aggregate(shifts, now, period, profile.HourlyRate), profile, nil
}

// summary returns the cached blurb when present, otherwise asks the
// summarizer and caches the result. Every failure path ends in the fixed
// fallback text: the blurb is decoration and must never degrade the stub.
func (s *PayrollService) summary(ctx context.Context, userID string, period domain.Period, totals domain.PayrollTotals, currency string) string {
	if s.cache != nil {
		if text, err := s.cache.Get(ctx, userID, period); err == nil && text != "" {
			return text
		}
	}

	if s.summarizer == nil {
		return FallbackSummary
	}

	text, err := s.generate(ctx, period, totals, currency)
	if err != nil {
		metrics.SummaryFallbacksTotal.WithLabelValues("generation_failed").Inc()
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("summary generation failed, using fallback")
		return FallbackSummary
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, period, text); err != nil {
			metrics.SummaryFallbacksTotal.WithLabelValues("cache_failed").Inc()
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("summary cache write failed")
		}
	}
	return text
}

// generate asks the summarizer for a fresh blurb. Empty output counts as a
// failure so callers never cache or serve a blank summary.
func (s *PayrollService) generate(ctx context.Context, period domain.Period, totals domain.PayrollTotals, currency string) (string, error) {
	text, err := s.summarizer.Summarize(ctx, ports.SummaryInput{
		Hours:      totals.Hours,
		Earnings:   totals.Earnings,
		Currency:   currency,
		ShiftCount: totals.Count,
		Period:     period,
	})
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("summarizer returned empty text")
	}
	return text, nil
}
