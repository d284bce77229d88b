package handler

import (
	"time"

	"github.com/nannytime/nannytime-api/internal/core/domain"
	"github.com/nannytime/nannytime-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// editShiftRequest is a full replace of the mutable shift fields. A null
// end_time reopens the shift.
type editShiftRequest struct {
	StartTime time.Time  `json:"start_time" validate:"required"`
	EndTime   *time.Time `json:"end_time"`
	Notes     string     `json:"notes"`
}

type shiftResponse struct {
	ID        string     `json:"id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// shiftStateResponse mirrors the refreshed state returned after a mutation:
// the full history plus the re-derived active shift.
type shiftStateResponse struct {
	Shifts  []shiftResponse `json:"shifts"`
	Active  *shiftResponse  `json:"active,omitempty"`
	Created *shiftResponse  `json:"created,omitempty"`
}

type listShiftsResponse struct {
	Data []shiftResponse `json:"data"`
}

type activeShiftResponse struct {
	Shift          *shiftResponse `json:"shift,omitempty"`
	ElapsedMinutes int64          `json:"elapsed_minutes"`
}

func toShiftResponse(s *domain.Shift) *shiftResponse {
	if s == nil {
		return nil
	}
	return &shiftResponse{
		ID:        s.ID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Notes:     s.Notes,
	}
}

func toShiftStateResponse(state *ports.ShiftState) shiftStateResponse {
	resp := shiftStateResponse{
		Shifts:  make([]shiftResponse, 0, len(state.Shifts)),
		Active:  toShiftResponse(state.Active),
		Created: toShiftResponse(state.Created),
	}
	for i := range state.Shifts {
		resp.Shifts = append(resp.Shifts, *toShiftResponse(&state.Shifts[i]))
	}
	return resp
}
