package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/cache"
	"github.com/atinyakov/go-link-tracker/internal/storage"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (*service.Auth, *storage.MemoryStorage) {
	t.Helper()

	store := storage.NewMemoryStorage()
	profiles := service.NewProfileService(store)
	return service.NewAuth(store, profiles, cache.NewMemoryCache(), zap.NewNop(), testSecret, time.Hour), store
}

func TestAuth_SignUp(t *testing.T) {
	auth, store := newAuth(t)
	ctx := context.Background()

	session, err := auth.SignUp(ctx, " Alice@Example.com ", "hunter22", "alice_1")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, "alice@example.com", session.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)

	profile, err := store.FindProfileByID(ctx, session.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice_1", profile.Username)

	user, err := store.FindUserByID(ctx, session.UserID)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	tests := []struct {
		name     string
		email    string
		password string
		username string
		check    func(t *testing.T, err error)
	}{
		{"bad email", "not-an-email", "hunter22", "bob", func(t *testing.T, err error) {
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		}},
		{"short password", "bob@example.com", "12345", "bob", func(t *testing.T, err error) {
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		}},
		{"bad username", "bob@example.com", "hunter22", "b!", func(t *testing.T, err error) {
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		}},
		{"username taken", "bob@example.com", "hunter22", "alice_1", func(t *testing.T, err error) {
			assert.ErrorIs(t, err, apperr.ErrUsernameTaken)
		}},
		{"email taken", "alice@example.com", "hunter22", "alice_2", func(t *testing.T, err error) {
			assert.ErrorIs(t, err, apperr.ErrEmailTaken)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.SignUp(ctx, tt.email, tt.password, tt.username)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAuth_SignInAndParse(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	created, err := auth.SignUp(ctx, "carol@example.com", "secret99", "carol")
	require.NoError(t, err)

	_, err = auth.SignIn(ctx, "carol@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = auth.SignIn(ctx, "nobody@example.com", "secret99")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	session, err := auth.SignIn(ctx, "CAROL@example.com", "secret99")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, session.UserID)
	assert.NotEqual(t, created.TokenID, session.TokenID)

	parsed, err := auth.ParseToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, parsed.UserID)
	assert.Equal(t, session.TokenID, parsed.TokenID)
	assert.Equal(t, "carol@example.com", parsed.Email)
}

func TestAuth_ParseToken_Rejects(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	sign := func(method jwt.SigningMethod, key interface{}, claims service.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	valid := service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u1",
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noUser := valid
	noUser.UserID = ""

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "invalid.token.here"},
		{"wrong key", sign(jwt.SigningMethodHS256, []byte("other"), valid)},
		{"expired", sign(jwt.SigningMethodHS256, []byte(testSecret), expired)},
		{"no user", sign(jwt.SigningMethodHS256, []byte(testSecret), noUser)},
		{"other algorithm", sign(jwt.SigningMethodHS512, []byte(testSecret), valid)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := auth.ParseToken(ctx, tt.token)
			assert.ErrorIs(t, err, apperr.ErrUnauthorized)
			assert.Nil(t, session)
		})
	}
}

func TestAuth_SignOutRevokes(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	session, err := auth.SignUp(ctx, "dan@example.com", "secret99", "dan")
	require.NoError(t, err)

	require.NoError(t, auth.SignOut(ctx, session))

	_, err = auth.ParseToken(ctx, session.Token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	fresh, err := auth.SignIn(ctx, "dan@example.com", "secret99")
	require.NoError(t, err)
	_, err = auth.ParseToken(ctx, fresh.Token)
	assert.NoError(t, err)
}

func TestAuth_UpdatePassword(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	session, err := auth.SignUp(ctx, "erin@example.com", "secret99", "erin")
	require.NoError(t, err)

	err = auth.UpdatePassword(ctx, session.UserID, "short")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	require.NoError(t, auth.UpdatePassword(ctx, session.UserID, "new-secret"))

	_, err = auth.SignIn(ctx, "erin@example.com", "secret99")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = auth.SignIn(ctx, "erin@example.com", "new-secret")
	assert.NoError(t, err)
}
