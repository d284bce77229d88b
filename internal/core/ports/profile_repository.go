package ports

import (
	"context"

	"github.com/nannytime/nannytime-api/internal/core/domain"
)

// ProfileRepository defines persistence for the single profile record per
// user. Get returns domain.ErrProfileNotFound when none exists yet; the
// service layer handles lazy creation.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) error
	// Upsert replaces the whole record, creating it when absent.
	Upsert(ctx context.Context, p *domain.Profile) error
}
