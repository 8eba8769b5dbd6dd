package service

import (
	"context"

	"animehub/internal/api/models"
	"animehub/internal/api/repository"
)

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Username  *string
	FullName  *string
	Bio       *string
	AvatarURL *string
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, update ProfileUpdate) (*models.Profile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// Get returns the profile, or (nil, nil) when the user has none yet.
func (s *profileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repo.Find(ctx, userID)
}

// Update applies the partial update over the existing profile (or an empty
// one) and upserts the row by user id.
func (s *profileService) Update(ctx context.Context, userID string, update ProfileUpdate) (*models.Profile, error) {
	profile, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.Profile{ID: userID}
	}

	if update.Username != nil {
		profile.Username = *update.Username
	}
	if update.FullName != nil {
		profile.FullName = *update.FullName
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.AvatarURL != nil {
		profile.AvatarURL = *update.AvatarURL
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
