package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/middleware"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// qrSize is the edge length of generated QR codes in pixels.
const qrSize = 256

// LinkHandler serves the owner's link management API.
type LinkHandler struct {
	service service.LinkServiceIface
	logger  *zap.Logger
}

// NewLink creates a LinkHandler.
func NewLink(s service.LinkServiceIface, l *zap.Logger) *LinkHandler {
	return &LinkHandler{
		service: s,
		logger:  l,
	}
}

func (h *LinkHandler) response(l *models.Link) models.LinkResponse {
	return models.LinkResponse{Link: *l, ViewURL: h.service.ViewURL(l.Token)}
}

// List returns the owner's links, newest first.
func (h *LinkHandler) List(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	links, err := h.service.List(ctx, session.UserID)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	out := make([]models.LinkResponse, 0, len(links))
	for i := range links {
		out = append(out, h.response(&links[i]))
	}

	writeJSON(res, http.StatusOK, out)
}

// Create adds a link for the signed-in user.
func (h *LinkHandler) Create(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	var body models.LinkInput
	if err := decodeJSONBody(res, req, &body); err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	link, err := h.service.Create(ctx, session.UserID, body)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusCreated, h.response(link))
}

// Get returns one of the owner's links.
func (h *LinkHandler) Get(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	link, err := h.service.Get(ctx, session.UserID, chi.URLParam(req, "id"))
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, h.response(link))
}

// Update edits one of the owner's links.
func (h *LinkHandler) Update(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	var body models.LinkInput
	if err := decodeJSONBody(res, req, &body); err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	link, err := h.service.Update(ctx, session.UserID, chi.URLParam(req, "id"), body)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, h.response(link))
}

// Delete removes one of the owner's links.
func (h *LinkHandler) Delete(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	if err := h.service.Delete(ctx, session.UserID, chi.URLParam(req, "id")); err != nil {
		writeError(res, h.logger, err)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}

// QRCode renders the public view URL of a link as a PNG image.
func (h *LinkHandler) QRCode(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	link, err := h.service.Get(ctx, session.UserID, chi.URLParam(req, "id"))
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	png, err := qrcode.Encode(h.service.ViewURL(link.Token), qrcode.Medium, qrSize)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	res.Header().Set("Content-Type", "image/png")
	res.WriteHeader(http.StatusOK)
	_, _ = res.Write(png)
}
