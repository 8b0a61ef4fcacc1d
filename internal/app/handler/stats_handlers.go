package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/middleware"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// StatsHandler serves the dashboard, the service stats and the health check.
type StatsHandler struct {
	service service.StatsServiceIface
	pinger  Pinger
	logger  *zap.Logger
}

// NewStats creates a StatsHandler.
func NewStats(s service.StatsServiceIface, p Pinger, l *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: s,
		pinger:  p,
		logger:  l,
	}
}

// Dashboard returns the signed-in user's statistics.
func (h *StatsHandler) Dashboard(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	dash, err := h.service.Dashboard(ctx, session.UserID)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, dash)
}

// Internal returns service-wide counts. It is mounted behind the subnet check.
func (h *StatsHandler) Internal(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	stats, err := h.service.ServiceStats(ctx)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, stats)
}

// Ping checks the store.
func (h *StatsHandler) Ping(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	if err := h.pinger.PingContext(ctx); err != nil {
		h.logger.Error("store unreachable", zap.Error(err))
		http.Error(res, "store unreachable", http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusOK)
}
