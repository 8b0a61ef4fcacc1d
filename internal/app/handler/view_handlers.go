package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/middleware"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// ViewHandler serves the public /view?token=<token> endpoint.
type ViewHandler struct {
	service service.ViewServiceIface
	logger  *zap.Logger
}

// NewView creates a ViewHandler.
func NewView(s service.ViewServiceIface, l *zap.Logger) *ViewHandler {
	return &ViewHandler{
		service: s,
		logger:  l,
	}
}

func (h *ViewHandler) open(res http.ResponseWriter, req *http.Request, password *string) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	result, err := h.service.Open(ctx, service.ViewRequest{
		Token:    req.URL.Query().Get("token"),
		Password: password,
		ViewerID: middleware.UserIDFromContext(req.Context()),
		Client:   req.UserAgent(),
	})
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	link := result.Link
	d := result.Decision

	response := models.ViewResponse{
		Token:        link.Token,
		Name:         link.Name,
		Description:  link.Description,
		ThumbnailURL: link.Thumbnail(),
		Protected:    d.Protected,
		Visible:      d.Visible,
		Password:     d.RevealedPassword,
		Views:        link.Views,
	}
	if d.Visible {
		response.URL = link.URL
	}

	status := http.StatusOK
	if d.Denied {
		status = http.StatusForbidden
	}

	res.Header().Set("Cache-Control", "no-store")
	writeJSON(res, status, response)
}

// Get shows a link. The destination is included only when no password is set.
func (h *ViewHandler) Get(res http.ResponseWriter, req *http.Request) {
	h.open(res, req, nil)
}

// Unlock evaluates a password attempt on a protected link.
func (h *ViewHandler) Unlock(res http.ResponseWriter, req *http.Request) {
	var body models.UnlockRequest

	if err := decodeJSONBody(res, req, &body); err != nil {
		writeError(res, h.logger, err)
		return
	}

	h.open(res, req, &body.Password)
}
