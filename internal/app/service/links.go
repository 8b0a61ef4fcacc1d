package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// tokenAttempts bounds token regeneration after a collision.
const tokenAttempts = 5

// LinkService manages the links of signed-in owners.
type LinkService struct {
	store    LinkStore
	resolver *TokenResolver
	logger   *zap.Logger
	baseURL  string
	now      func() time.Time
}

// NewLinkService creates a LinkService. baseURL prefixes the public view URLs.
func NewLinkService(store LinkStore, resolver *TokenResolver, logger *zap.Logger, baseURL string) *LinkService {
	return &LinkService{
		store:    store,
		resolver: resolver,
		logger:   logger,
		baseURL:  baseURL,
		now:      time.Now,
	}
}

// ViewURL returns the public URL of token.
func (s *LinkService) ViewURL(token string) string {
	return s.baseURL + "/view?token=" + url.QueryEscape(token)
}

// Create validates in and stores a new link owned by userID with a fresh token.
func (s *LinkService) Create(ctx context.Context, userID string, in models.LinkInput) (*models.Link, error) {
	in, err := normalizeLinkInput(in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	link := models.Link{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         in.Name,
		Description:  in.Description,
		URL:          in.URL,
		ThumbnailURL: in.ThumbnailURL,
		Password:     in.Password,
		ShowPassword: in.ShowPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for attempt := 1; attempt <= tokenAttempts; attempt++ {
		link.Token = s.resolver.NewToken()

		created, err := s.store.CreateLink(ctx, link)
		if err == nil {
			s.logger.Info("link created", zap.String("id", created.ID), zap.String("user_id", userID))
			return created, nil
		}
		if !errors.Is(err, apperr.ErrConflict) {
			return nil, fmt.Errorf("create link: %w", err)
		}

		s.logger.Warn("token collision", zap.Int("attempt", attempt))
	}

	return nil, fmt.Errorf("create link: no free token after %d attempts: %w", tokenAttempts, apperr.ErrConflict)
}

// owned loads link id and checks that userID owns it.
func (s *LinkService) owned(ctx context.Context, userID, id string) (*models.Link, error) {
	link, err := s.store.FindLinkByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if link.UserID != userID {
		return nil, apperr.ErrForbidden
	}
	return link, nil
}

// Update replaces the editable fields of link id. Token, owner and views are kept.
func (s *LinkService) Update(ctx context.Context, userID string, id string, in models.LinkInput) (*models.Link, error) {
	in, err := normalizeLinkInput(in)
	if err != nil {
		return nil, err
	}

	link, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	link.Name = in.Name
	link.Description = in.Description
	link.URL = in.URL
	link.ThumbnailURL = in.ThumbnailURL
	link.Password = in.Password
	link.ShowPassword = in.ShowPassword
	link.UpdatedAt = s.now().UTC()

	return s.store.UpdateLink(ctx, *link)
}

// Delete removes link id and its view history.
func (s *LinkService) Delete(ctx context.Context, userID string, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.store.DeleteLink(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("link deleted", zap.String("id", id), zap.String("user_id", userID))
	return nil
}

// Get returns link id when userID owns it.
func (s *LinkService) Get(ctx context.Context, userID string, id string) (*models.Link, error) {
	return s.owned(ctx, userID, id)
}

// List returns the links of userID, newest first.
func (s *LinkService) List(ctx context.Context, userID string) ([]models.Link, error) {
	return s.store.FindLinksByUserID(ctx, userID)
}
