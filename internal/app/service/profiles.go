package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// ProfileService manages public profiles. Usernames are case-sensitive.
type ProfileService struct {
	store ProfileStore
	now   func() time.Time
}

// NewProfileService creates a ProfileService.
func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store, now: time.Now}
}

// UsernameAvailable reports whether username is valid and not yet taken.
func (s *ProfileService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return false, err
	}

	_, err := s.store.FindProfileByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return false, nil
}

// Get returns the profile of userID.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.store.FindProfileByID(ctx, userID)
}

// Update changes the username and avatar of userID.
func (s *ProfileService) Update(ctx context.Context, userID string, in models.ProfileInput) (*models.Profile, error) {
	username := strings.TrimSpace(in.Username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	avatar := emptyToNil(in.AvatarURL)
	if avatar != nil {
		if err := ValidateURL("avatar_url", *avatar); err != nil {
			return nil, err
		}
	}

	existing, err := s.store.FindProfileByUsername(ctx, username)
	switch {
	case err == nil && existing.ID != userID:
		return nil, apperr.ErrUsernameTaken
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	return s.store.UpdateProfile(ctx, models.Profile{
		ID:        userID,
		Username:  username,
		AvatarURL: avatar,
		UpdatedAt: s.now().UTC(),
	})
}
