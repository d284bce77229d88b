package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nannytime/nannytime-api/internal/api/metrics"
	"github.com/nannytime/nannytime-api/internal/core/domain"
	"github.com/nannytime/nannytime-api/internal/core/ports"
)

// ShiftService is the shift lifecycle manager. Every mutation re-reads the
// user's shifts from the store and re-derives the active shift from the
// fresh list, so the returned state can never drift from what is persisted.
type ShiftService struct {
	repo    ports.ShiftRepository
	prewarm ports.SummaryPrewarmer // nil disables prewarming
	logger  zerolog.Logger
}

func NewShiftService(repo ports.ShiftRepository, prewarm ports.SummaryPrewarmer, logger zerolog.Logger) *ShiftService {
	return &ShiftService{repo: repo, prewarm: prewarm, logger: logger}
}

// ClockIn opens a new shift at now. The one-open-shift rule is enforced here
// as an explicit precondition: a second clock-in while a shift is open is
// rejected rather than silently creating a duplicate.
func (s *ShiftService) ClockIn(ctx context.Context, userID string, now time.Time) (*ports.ShiftState, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	state, err := s.refresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Active != nil {
		return nil, domain.ErrShiftAlreadyActive
	}

	shift := &domain.Shift{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartTime: now,
		CreatedAt: now,
	}
	if err := s.repo.Insert(ctx, shift); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("clock-in insert failed")
		return nil, err
	}

	metrics.ClockInsTotal.Inc()
	s.logger.Info().Str("user_id", userID).Str("shift_id", shift.ID).Time("start", now).Msg("clocked in")

	state, err = s.refresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	state.Created = shift
	return state, nil
}

// ClockOut closes the given shift at now. Clocking out a shift that is
// already closed is rejected; the earlier behaviour of overwriting the end
// time hid editing mistakes.
func (s *ShiftService) ClockOut(ctx context.Context, userID, shiftID string, now time.Time) (*ports.ShiftState, error) {
	shift, err := s.repo.FindByID(ctx, userID, shiftID)
	if err != nil {
		return nil, err
	}
	if !shift.IsOpen() {
		return nil, domain.ErrShiftAlreadyClosed
	}

	shift.EndTime = &now
	if err := s.repo.Update(ctx, shift); err != nil {
		s.logger.Error().Err(err).Str("shift_id", shiftID).Msg("clock-out update failed")
		return nil, err
	}

	metrics.ClockOutsTotal.Inc()
	s.logger.Info().Str("user_id", userID).Str("shift_id", shiftID).Time("end", now).Msg("clocked out")

	if s.prewarm != nil {
		s.prewarm.Enqueue(ports.PrewarmJob{UserID: userID, Period: domain.PeriodWeek})
		s.prewarm.Enqueue(ports.PrewarmJob{UserID: userID, Period: domain.PeriodMonth})
	}

	return s.refresh(ctx, userID)
}

// ManualAdd creates a zero-duration shift at now, meant to be edited right
// away. Both ends are set, so it never contends with the active-shift rule.
func (s *ShiftService) ManualAdd(ctx context.Context, userID string, now time.Time) (*ports.ShiftState, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	end := now
	shift := &domain.Shift{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartTime: now,
		EndTime:   &end,
		CreatedAt: now,
	}
	if err := s.repo.Insert(ctx, shift); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("manual add failed")
		return nil, err
	}

	metrics.ShiftMutationsTotal.WithLabelValues("manual_add").Inc()

	state, err := s.refresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	state.Created = shift
	return state, nil
}

// EditShift fully replaces start time, end time, and notes. A nil end time
// reopens the shift, which is allowed only while no other shift is open.
func (s *ShiftService) EditShift(ctx context.Context, userID string, input ports.EditShiftInput) (*ports.ShiftState, error) {
	shift, err := s.repo.FindByID(ctx, userID, input.ShiftID)
	if err != nil {
		return nil, err
	}

	shift.StartTime = input.StartTime
	shift.EndTime = input.EndTime
	shift.Notes = input.Notes

	if err := shift.Validate(); err != nil {
		return nil, err
	}

	if shift.IsOpen() {
		shifts, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if active, _ := domain.FindActive(shifts); active != nil && active.ID != shift.ID {
			return nil, domain.ErrShiftAlreadyActive
		}
	}

	if err := s.repo.Update(ctx, shift); err != nil {
		s.logger.Error().Err(err).Str("shift_id", input.ShiftID).Msg("shift edit failed")
		return nil, err
	}

	metrics.ShiftMutationsTotal.WithLabelValues("edit").Inc()
	s.logger.Info().Str("user_id", userID).Str("shift_id", input.ShiftID).Msg("shift edited")

	return s.refresh(ctx, userID)
}

// DeleteShift removes the record permanently. Confirmation is a UI concern.
func (s *ShiftService) DeleteShift(ctx context.Context, userID, shiftID string) (*ports.ShiftState, error) {
	if err := s.repo.Delete(ctx, userID, shiftID); err != nil {
		return nil, err
	}

	metrics.ShiftMutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("user_id", userID).Str("shift_id", shiftID).Msg("shift deleted")

	return s.refresh(ctx, userID)
}

// ListShifts returns the user's history, newest first, optionally narrowed
// to the week or month containing now. The caller supplies now so the range
// filter resolves the same window as the pay stub. A store failure on this
// read path degrades to an empty list so the history view still renders.
func (s *ShiftService) ListShifts(ctx context.Context, userID string, rng ports.ListRange, now time.Time) ([]domain.Shift, error) {
	shifts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("shift list failed, degrading to empty")
		return []domain.Shift{}, nil
	}

	if rng == ports.RangeWeek || rng == ports.RangeMonth {
		start, end := domain.PeriodWindow(now, domain.Period(rng))
		filtered := shifts[:0:0]
		for _, shift := range shifts {
			if shift.StartTime.Before(start) || shift.StartTime.After(end) {
				continue
			}
			filtered = append(filtered, shift)
		}
		shifts = filtered
	}

	sortShiftsDesc(shifts)
	return shifts, nil
}

// ActiveShift returns the open shift, if any, with elapsed whole minutes
// computed against now. Clients poll this instead of ticking locally.
func (s *ShiftService) ActiveShift(ctx context.Context, userID string, now time.Time) (*ports.ActiveShiftView, error) {
	state, err := s.refresh(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("active shift read failed, degrading to none")
		return &ports.ActiveShiftView{}, nil
	}
	if state.Active == nil {
		return &ports.ActiveShiftView{}, nil
	}
	return &ports.ActiveShiftView{
		Shift:          state.Active,
		ElapsedMinutes: state.Active.Minutes(now),
	}, nil
}

// refresh re-reads the user's shifts and re-derives the active one. More
// than one open shift is a store inconsistency: it is logged and counted,
// and the deterministic pick from domain.FindActive is used.
func (s *ShiftService) refresh(ctx context.Context, userID string) (*ports.ShiftState, error) {
	shifts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("refresh shifts: %w", err)
	}
	sortShiftsDesc(shifts)

	active, open := domain.FindActive(shifts)
	if open > 1 {
		metrics.ActiveShiftAnomaliesTotal.Inc()
		s.logger.Warn().Str("user_id", userID).Int("open_shifts", open).Msg("multiple open shifts in store")
	}

	return &ports.ShiftState{Shifts: shifts, Active: active}, nil
}

// sortShiftsDesc orders newest start first; the store does not guarantee it.
func sortShiftsDesc(shifts []domain.Shift) {
	sort.SliceStable(shifts, func(i, j int) bool {
		return shifts[i].StartTime.After(shifts[j].StartTime)
	})
}
