package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/nannytime/nannytime-api/internal/core/domain"
	"github.com/nannytime/nannytime-api/internal/core/ports"
)

// ProfileService implements get-or-create-default semantics over the
// profile store. A user always has a usable profile: reads that find
// nothing create the default, and reads that fail degrade to the default
// in memory.
type ProfileService struct {
	repo   ports.ProfileRepository
	logger zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	profile, err := s.repo.Get(ctx, userID)
	if err == nil {
		return profile, nil
	}

	if !errors.Is(err, domain.ErrProfileNotFound) {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("profile fetch failed, degrading to default")
		return domain.DefaultProfile(userID), nil
	}

	created := domain.DefaultProfile(userID)
	if err := s.repo.Create(ctx, created); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("profile auto-create failed")
		// Hand back the in-memory default so the view still renders.
		return domain.DefaultProfile(userID), nil
	}

	s.logger.Info().Str("user_id", userID).Msg("default profile created")
	return created, nil
}

// Update is a full replace, not a patch: the payload's name, rate, and
// currency overwrite the stored record.
func (s *ProfileService) Update(ctx context.Context, userID string, p domain.Profile) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.ID = userID
	if err := s.repo.Upsert(ctx, &p); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("profile update failed")
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("currency", p.Currency).Float64("hourly_rate", p.HourlyRate).Msg("profile updated")
	return &p, nil
}
