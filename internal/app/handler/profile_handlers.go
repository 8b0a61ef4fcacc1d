package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/middleware"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// ProfileHandler serves profile reads, edits and username checks.
type ProfileHandler struct {
	service service.ProfileServiceIface
	logger  *zap.Logger
}

// NewProfile creates a ProfileHandler.
func NewProfile(s service.ProfileServiceIface, l *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: s,
		logger:  l,
	}
}

// Availability answers whether ?username= can still be registered.
func (h *ProfileHandler) Availability(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	username := req.URL.Query().Get("username")

	available, err := h.service.UsernameAvailable(ctx, username)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, models.AvailabilityResponse{Username: username, Available: available})
}

// Get returns the signed-in user's profile.
func (h *ProfileHandler) Get(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	profile, err := h.service.Get(ctx, session.UserID)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, profile)
}

// Update edits the signed-in user's profile.
func (h *ProfileHandler) Update(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	var body models.ProfileInput
	if err := decodeJSONBody(res, req, &body); err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	profile, err := h.service.Update(ctx, session.UserID, body)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, profile)
}
