package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nannytime/nannytime-api/internal/core/domain"
	"github.com/nannytime/nannytime-api/internal/core/ports"
)

// AuthService implements registration, login, and sign-out. Sessions are
// stateless JWTs; sign-out revokes the token for its remaining lifetime so
// it cannot be replayed.
type AuthService struct {
	repo      ports.AuthRepository
	sessions  ports.SessionStore // nil disables revocation
	profiles  ports.ProfileRepository
	events    *SessionEvents
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(
	repo ports.AuthRepository,
	sessions ports.SessionStore,
	profiles ports.ProfileRepository,
	events *SessionEvents,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		profiles:  profiles,
		events:    events,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates an account and eagerly seeds the default profile, so the
// first profile read never races the lazy-create path.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.profiles != nil {
		// Best effort: the lazy get-or-create path covers a failure here.
		_ = s.profiles.Create(ctx, domain.DefaultProfile(created.ID))
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	if s.events != nil {
		s.events.Publish(SessionEvent{Type: SessionSignedIn, UserID: user.ID})
	}

	return token, user, nil
}

// Logout revokes the presented token and announces the sign-out so per-user
// caches are dropped, mirroring the client clearing its state on session
// loss.
func (s *AuthService) Logout(ctx context.Context, userID, token string) error {
	if s.sessions != nil {
		if err := s.sessions.Revoke(ctx, token, s.remainingLifetime(token)); err != nil {
			return err
		}
	}
	if s.events != nil {
		s.events.Publish(SessionEvent{Type: SessionSignedOut, UserID: userID})
	}
	return nil
}

// remainingLifetime returns the seconds until the token expires, so the
// revocation key in Redis outlives the token by as little as possible. An
// unparseable token falls back to the full TTL.
func (s *AuthService) remainingLifetime(token string) int64 {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err == nil {
		if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
			if remaining := time.Until(exp.Time); remaining > 0 {
				return int64(remaining.Seconds())
			}
		}
	}
	return int64(s.tokenTTL.Seconds())
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
