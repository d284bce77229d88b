package ports

import (
	"context"

	"github.com/nannytime/nannytime-api/internal/core/domain"
)

// ProfileService exposes get-or-create-default and full-replace update
// semantics for the caregiver profile.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, userID string, p domain.Profile) (*domain.Profile, error)
}
