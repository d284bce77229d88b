package ports

import (
	"context"

	"github.com/nannytime/nannytime-api/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// SessionStore tracks revoked session tokens so sign-out invalidates a JWT
// before its natural expiry.
type SessionStore interface {
	// Revoke marks the token invalid for its remaining lifetime.
	Revoke(ctx context.Context, token string, ttlSeconds int64) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
