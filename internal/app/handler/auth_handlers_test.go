package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/middleware"
	"github.com/atinyakov/go-link-tracker/internal/mocks"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

func sessionCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie set", middleware.SessionCookie)
	return nil
}

func TestAuthHandler_SignUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthIface(ctrl)
	h := NewAuth(mockAuth, zap.NewNop(), true)

	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("account created", func(t *testing.T) {
		mockAuth.EXPECT().SignUp(gomock.Any(), "ann@example.com", "secret1", "ann").
			Return(&models.Session{Token: "jwt-token", UserID: "u1", Email: "ann@example.com", ExpiresAt: expires}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
			bytes.NewBufferString(`{"email":"ann@example.com","password":"secret1","username":"ann"}`))
		w := httptest.NewRecorder()

		h.SignUp(w, req)

		res := w.Result()
		defer res.Body.Close()

		require.Equal(t, http.StatusCreated, res.StatusCode)
		c := sessionCookie(t, res)
		assert.Equal(t, "jwt-token", c.Value)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Contains(t, w.Body.String(), `"token":"jwt-token"`)
	})

	t.Run("username taken", func(t *testing.T) {
		mockAuth.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, apperr.ErrUsernameTaken)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
			bytes.NewBufferString(`{"email":"b@example.com","password":"secret1","username":"ann"}`))
		w := httptest.NewRecorder()

		h.SignUp(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestAuthHandler_SignIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthIface(ctrl)
	h := NewAuth(mockAuth, zap.NewNop(), false)

	t.Run("bad credentials", func(t *testing.T) {
		mockAuth.EXPECT().SignIn(gomock.Any(), "ann@example.com", "wrong").Return(nil, apperr.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin",
			bytes.NewBufferString(`{"email":"ann@example.com","password":"wrong"}`))
		w := httptest.NewRecorder()

		h.SignIn(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("signed in", func(t *testing.T) {
		mockAuth.EXPECT().SignIn(gomock.Any(), "ann@example.com", "secret1").
			Return(&models.Session{Token: "jwt-token", UserID: "u1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin",
			bytes.NewBufferString(`{"email":"ann@example.com","password":"secret1"}`))
		w := httptest.NewRecorder()

		h.SignIn(w, req)

		res := w.Result()
		defer res.Body.Close()

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.False(t, sessionCookie(t, res).Secure)
	})
}

func TestAuthHandler_SignOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthIface(ctrl)
	h := NewAuth(mockAuth, zap.NewNop(), false)

	session := &models.Session{Token: "jwt-token", TokenID: "jti-1", UserID: "u1"}
	mockAuth.EXPECT().SignOut(gomock.Any(), session).Return(nil)

	req := middleware.InjectSession(httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil), session)
	w := httptest.NewRecorder()

	h.SignOut(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	c := sessionCookie(t, res)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthIface(ctrl)
	h := NewAuth(mockAuth, zap.NewNop(), false)

	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{name: "changed", expectedCode: http.StatusNoContent},
		{name: "too short", err: apperr.Invalid("password", "must be at least 6 characters"), expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth.EXPECT().UpdatePassword(gomock.Any(), "u1", "newpass").Return(tt.err)

			req := httptest.NewRequest(http.MethodPut, "/api/auth/password", bytes.NewBufferString(`{"password":"newpass"}`))
			req = middleware.InjectSession(req, &models.Session{UserID: "u1"})
			w := httptest.NewRecorder()

			h.UpdatePassword(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestAuthHandler_SessionHidesToken(t *testing.T) {
	h := NewAuth(nil, zap.NewNop(), false)

	req := middleware.InjectSession(httptest.NewRequest(http.MethodGet, "/api/auth/session", nil),
		&models.Session{Token: "jwt-token", UserID: "u1", Email: "ann@example.com"})
	w := httptest.NewRecorder()

	h.Session(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "jwt-token")
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
}
