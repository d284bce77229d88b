package ports

import (
	"context"

	"github.com/nannytime/nannytime-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the presented token and publishes a signed-out event so
	// per-user caches can be cleared.
	Logout(ctx context.Context, userID, token string) error
}
