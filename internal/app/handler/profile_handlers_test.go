package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/middleware"
	"github.com/atinyakov/go-link-tracker/internal/mocks"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

func TestProfileHandler_Availability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockProfileServiceIface(ctrl)
	h := NewProfile(mockService, zap.NewNop())

	tests := []struct {
		name         string
		username     string
		available    bool
		err          error
		expectedCode int
	}{
		{name: "free", username: "newbie", available: true, expectedCode: http.StatusOK},
		{name: "taken", username: "ann", available: false, expectedCode: http.StatusOK},
		{name: "invalid", username: "a!", err: apperr.Invalid("username", "3-30 letters, digits or underscores"), expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService.EXPECT().UsernameAvailable(gomock.Any(), tt.username).Return(tt.available, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/api/profiles/availability?username="+tt.username, nil)
			w := httptest.NewRecorder()

			h.Availability(w, req)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.err != nil {
				return
			}

			var got models.AvailabilityResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.available, got.Available)
			assert.Equal(t, tt.username, got.Username)
		})
	}
}

func TestProfileHandler_GetAndUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockProfileServiceIface(ctrl)
	h := NewProfile(mockService, zap.NewNop())
	session := &models.Session{UserID: "u1"}

	t.Run("get", func(t *testing.T) {
		mockService.EXPECT().Get(gomock.Any(), "u1").Return(&models.Profile{ID: "u1", Username: "ann"}, nil)

		req := middleware.InjectSession(httptest.NewRequest(http.MethodGet, "/api/profile", nil), session)
		w := httptest.NewRecorder()

		h.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"ann"`)
	})

	t.Run("rename to a taken username", func(t *testing.T) {
		mockService.EXPECT().Update(gomock.Any(), "u1", models.ProfileInput{Username: "bob"}).Return(nil, apperr.ErrUsernameTaken)

		req := middleware.InjectSession(httptest.NewRequest(http.MethodPut, "/api/profile", bytes.NewBufferString(`{"username":"bob"}`)), session)
		w := httptest.NewRecorder()

		h.Update(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
