package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// DefaultSessionTTL is the lifetime of a session token.
const DefaultSessionTTL = 24 * time.Hour

// Claims represents the claims carried by a session token.
type Claims struct {
	// Embedded RegisteredClaims carries the token id (jti) and expiry.
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// RevocationCache remembers signed-out token ids until they expire.
type RevocationCache interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Auth manages accounts and the sessions issued for them.
type Auth struct {
	users    UserStore
	profiles *ProfileService
	revoked  RevocationCache
	logger   *zap.Logger
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewAuth creates an Auth signing sessions with secret. A zero ttl means DefaultSessionTTL.
func NewAuth(users UserStore, profiles *ProfileService, revoked RevocationCache, logger *zap.Logger, secret string, ttl time.Duration) *Auth {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &Auth{
		users:    users,
		profiles: profiles,
		revoked:  revoked,
		logger:   logger,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

func revokedKey(tokenID string) string {
	return "revoked:" + tokenID
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issue signs a new session for user.
func (a *Auth) issue(user *models.User) (*models.Session, error) {
	now := a.now()
	expires := now.Add(a.ttl)
	tokenID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		UserID: user.ID,
		Email:  user.Email,
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	return &models.Session{
		Token:     signed,
		TokenID:   tokenID,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: expires.UTC().Truncate(time.Second),
	}, nil
}

// SignUp creates an account with its profile and opens a session for it.
func (a *Auth) SignUp(ctx context.Context, email, password, username string) (*models.Session, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)

	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	available, err := a.profiles.UsernameAvailable(ctx, username)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperr.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := a.now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	profile := models.Profile{
		ID:        user.ID,
		Username:  username,
		UpdatedAt: now,
	}

	if err := a.users.CreateAccount(ctx, user, profile); err != nil {
		return nil, err
	}

	a.logger.Info("account created", zap.String("user_id", user.ID))
	return a.issue(&user)
}

// SignIn checks the credentials and opens a session.
func (a *Auth) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	user, err := a.users.FindUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	return a.issue(user)
}

// SignOut revokes the session until it would have expired anyway.
func (a *Auth) SignOut(ctx context.Context, session *models.Session) error {
	remaining := session.ExpiresAt.Sub(a.now())
	if remaining <= 0 {
		return nil
	}

	if err := a.revoked.Set(ctx, revokedKey(session.TokenID), session.UserID, remaining); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	a.logger.Info("session revoked", zap.String("user_id", session.UserID))
	return nil
}

// UpdatePassword replaces the password of userID.
func (a *Auth) UpdatePassword(ctx context.Context, userID string, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return a.users.UpdatePasswordHash(ctx, userID, string(hash))
}

// ParseToken verifies raw and returns its session. Expired, malformed and
// revoked tokens yield apperr.ErrUnauthorized.
func (a *Auth) ParseToken(ctx context.Context, raw string) (*models.Session, error) {
	claims := &Claims{}

	parser := jwt.Parser{
		ValidMethods: []string{jwt.SigningMethodHS256.Alg()},
	}
	token, err := parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, apperr.ErrUnauthorized
	}

	revoked, err := a.revoked.Exists(ctx, revokedKey(claims.ID))
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, apperr.ErrUnauthorized
	}

	return &models.Session{
		Token:     raw,
		TokenID:   claims.ID,
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
