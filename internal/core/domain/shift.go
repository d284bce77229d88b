package domain

import (
	"errors"
	"time"
)

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrShiftNotFound = errors.New("shift not found")
var ErrShiftAlreadyActive = errors.New("an active shift already exists")
var ErrShiftAlreadyClosed = errors.New("shift is already clocked out")
var ErrInvalidTimeRange = errors.New("end time is before start time")

// Shift is the core record: one span of worked time. A nil EndTime means the
// shift is open: the caregiver is clocked in right now.
type Shift struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"user_id" bson:"user_id"`
	StartTime time.Time  `json:"start_time" bson:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}

// IsOpen reports whether the shift has not been clocked out yet.
func (s *Shift) IsOpen() bool {
	return s.EndTime == nil
}

// Minutes returns the worked duration in whole minutes. Open shifts report
// the elapsed time against now; closed shifts use their recorded end.
func (s *Shift) Minutes(now time.Time) int64 {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return int64(end.Sub(s.StartTime) / time.Minute)
}

// Validate checks the closed-range rule: when both ends are set, the end must
// not precede the start. Open shifts (nil end) are always range-valid.
func (s *Shift) Validate() error {
	if s.EndTime != nil && s.EndTime.Before(s.StartTime) {
		return ErrInvalidTimeRange
	}
	return nil
}

// FindActive selects the shift considered currently active and reports how
// many open shifts the collection holds. A well-formed store has at most one;
// when several exist (a consistency violation this layer tolerates rather
// than prevents) the pick is deterministic: latest start time, ties broken by
// the lexically greater ID. Returns nil, 0 when every shift is closed.
func FindActive(shifts []Shift) (*Shift, int) {
	var active *Shift
	open := 0
	for i := range shifts {
		s := &shifts[i]
		if !s.IsOpen() {
			continue
		}
		open++
		if active == nil {
			active = s
			continue
		}
		if s.StartTime.After(active.StartTime) ||
			(s.StartTime.Equal(active.StartTime) && s.ID > active.ID) {
			active = s
		}
	}
	return active, open
}
