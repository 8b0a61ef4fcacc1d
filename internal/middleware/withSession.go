package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// ContextKey is a custom type used for keys in the context.
type ContextKey string

// SessionKey is the key under which the request session is stored.
const SessionKey ContextKey = "session"

// SessionCookie is the cookie carrying the session token for browser clients.
const SessionCookie = "session"

// InjectSession attaches s to the request context.
func InjectSession(req *http.Request, s *models.Session) *http.Request {
	return req.WithContext(WithSessionContext(req.Context(), s))
}

// WithSessionContext returns a copy of ctx carrying s.
func WithSessionContext(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// SessionFromContext returns the session attached to ctx, if any.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*models.Session)
	return s, ok && s != nil
}

// UserIDFromContext returns the signed-in user id or nil for anonymous requests.
func UserIDFromContext(ctx context.Context) *string {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return nil
	}
	id := s.UserID
	return &id
}

// TokenFromRequest extracts a bearer token from the Authorization header or
// the session cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}

	return ""
}

// WithSession parses the session token once per request and stores the session
// in the context. Requests without a valid token continue anonymously.
func WithSession(auth service.AuthIface, log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := TokenFromRequest(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := auth.ParseToken(r.Context(), raw)
			if err != nil {
				if apperr.KindOf(err) != apperr.KindAuthorization {
					log.Error("cannot verify session", zap.Error(err))
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, InjectSession(r, session))
		})
	}
}

// RequireSession rejects requests that carry no valid session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"sign in required"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
