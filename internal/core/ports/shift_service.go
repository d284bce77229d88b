package ports

import (
	"context"
	"time"

	"github.com/nannytime/nannytime-api/internal/core/domain"
)

// ListRange filters shift history. It widens Period with an unbounded option
// for the full history view.
type ListRange string

const (
	RangeWeek  ListRange = "week"
	RangeMonth ListRange = "month"
	RangeAll   ListRange = "all"
)

// ShiftState is the refreshed view returned after every mutation: the full
// shift list re-read from the store and the active shift re-derived from it.
// Mutations never patch client-side state locally.
type ShiftState struct {
	Shifts []domain.Shift
	Active *domain.Shift
	// Created is set when the operation inserted a new shift.
	Created *domain.Shift
}

// EditShiftInput is a full replace of the mutable shift fields. A nil
// EndTime reopens the shift.
type EditShiftInput struct {
	ShiftID   string
	StartTime time.Time
	EndTime   *time.Time
	Notes     string
}

// ActiveShiftView is the current open shift with server-computed elapsed
// time, polled by clients instead of ticking locally.
type ActiveShiftView struct {
	Shift          *domain.Shift
	ElapsedMinutes int64
}

// ShiftService is the shift lifecycle manager: it applies clock-in,
// clock-out, manual-add, edit, and delete transitions while preserving the
// one-open-shift-per-user rule.
type ShiftService interface {
	ClockIn(ctx context.Context, userID string, now time.Time) (*ShiftState, error)
	ClockOut(ctx context.Context, userID, shiftID string, now time.Time) (*ShiftState, error)
	ManualAdd(ctx context.Context, userID string, now time.Time) (*ShiftState, error)
	EditShift(ctx context.Context, userID string, input EditShiftInput) (*ShiftState, error)
	DeleteShift(ctx context.Context, userID, shiftID string) (*ShiftState, error)
	ListShifts(ctx context.Context, userID string, rng ListRange, now time.Time) ([]domain.Shift, error)
	ActiveShift(ctx context.Context, userID string, now time.Time) (*ActiveShiftView, error)
}
