package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/middleware"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// AuthHandler serves sign-up, sign-in, sign-out and password changes.
type AuthHandler struct {
	auth         service.AuthIface
	logger       *zap.Logger
	secureCookie bool
}

// NewAuth creates an AuthHandler. secureCookie marks the session cookie Secure.
func NewAuth(a service.AuthIface, l *zap.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		auth:         a,
		logger:       l,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) setCookie(res http.ResponseWriter, s *models.Session) {
	http.SetCookie(res, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    s.Token,
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// SignUp creates an account and opens a session.
func (h *AuthHandler) SignUp(res http.ResponseWriter, req *http.Request) {
	var body models.SignUpRequest
	if err := decodeJSONBody(res, req, &body); err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	session, err := h.auth.SignUp(ctx, body.Email, body.Password, body.Username)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	h.setCookie(res, session)
	writeJSON(res, http.StatusCreated, session)
}

// SignIn opens a session for valid credentials.
func (h *AuthHandler) SignIn(res http.ResponseWriter, req *http.Request) {
	var body models.SignInRequest
	if err := decodeJSONBody(res, req, &body); err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	session, err := h.auth.SignIn(ctx, body.Email, body.Password)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	h.setCookie(res, session)
	writeJSON(res, http.StatusOK, session)
}

// SignOut revokes the current session and clears the cookie.
func (h *AuthHandler) SignOut(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	if err := h.auth.SignOut(ctx, session); err != nil {
		writeError(res, h.logger, err)
		return
	}

	http.SetCookie(res, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		Path:     "/",
	})
	res.WriteHeader(http.StatusNoContent)
}

// UpdatePassword replaces the signed-in user's password.
func (h *AuthHandler) UpdatePassword(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	var body models.PasswordRequest
	if err := decodeJSONBody(res, req, &body); err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	if err := h.auth.UpdatePassword(ctx, session.UserID, body.Password); err != nil {
		writeError(res, h.logger, err)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}

// Session returns the current session without its token.
func (h *AuthHandler) Session(res http.ResponseWriter, req *http.Request) {
	session, _ := middleware.SessionFromContext(req.Context())

	out := *session
	out.Token = ""
	writeJSON(res, http.StatusOK, out)
}
