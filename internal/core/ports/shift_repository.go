package ports

import (
	"context"

	"github.com/nannytime/nannytime-api/internal/core/domain"
)

// ShiftRepository defines persistence operations for shift records. Every
// operation is scoped to a user: a shift is only visible to its owner, the
// same way the backing store enforces row ownership.
type ShiftRepository interface {
	// ListByUser returns all of the user's shifts ordered by start time
	// descending.
	ListByUser(ctx context.Context, userID string) ([]domain.Shift, error)
	FindByID(ctx context.Context, userID, shiftID string) (*domain.Shift, error)
	Insert(ctx context.Context, s *domain.Shift) error
	// Update replaces start time, end time, and notes for the shift's ID.
	Update(ctx context.Context, s *domain.Shift) error
	Delete(ctx context.Context, userID, shiftID string) error
}
