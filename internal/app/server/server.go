// Package server assembles the HTTP router of the link tracker.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/app/handler"
	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/middleware"
)

// Deps are the services the router dispatches to.
type Deps struct {
	Links    service.LinkServiceIface
	Views    service.ViewServiceIface
	Auth     service.AuthIface
	Profiles service.ProfileServiceIface
	Stats    service.StatsServiceIface
	Pinger   handler.Pinger
}

// Options tune the router.
type Options struct {
	TrustedSubnet  string
	SecureCookies  bool
	RateLimitRPS   float64
	RateLimitBurst int
}

// Init builds the chi router with every route and middleware.
func Init(deps Deps, opts Options, logger *zap.Logger) *chi.Mux {
	viewHandler := handler.NewView(deps.Views, logger)
	authHandler := handler.NewAuth(deps.Auth, logger, opts.SecureCookies)
	profileHandler := handler.NewProfile(deps.Profiles, logger)
	linkHandler := handler.NewLink(deps.Links, logger)
	statsHandler := handler.NewStats(deps.Stats, deps.Pinger, logger)

	limiter := middleware.WithRateLimit(middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst, opts.TrustedSubnet))

	r := chi.NewRouter()
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithGzipRequest)
	r.Use(middleware.WithGzipResponse)
	r.Use(middleware.WithSession(deps.Auth, logger))

	r.Get("/ping", statsHandler.Ping)

	r.With(limiter).Route("/view", func(r chi.Router) {
		r.Get("/", viewHandler.Get)
		r.Post("/", viewHandler.Unlock)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limiter).Post("/signup", authHandler.SignUp)
			r.With(limiter).Post("/signin", authHandler.SignIn)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSession)
				r.Post("/signout", authHandler.SignOut)
				r.Put("/password", authHandler.UpdatePassword)
				r.Get("/session", authHandler.Session)
			})
		})

		r.Get("/profiles/availability", profileHandler.Availability)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)

			r.Get("/profile", profileHandler.Get)
			r.Put("/profile", profileHandler.Update)

			r.Route("/links", func(r chi.Router) {
				r.Get("/", linkHandler.List)
				r.Post("/", linkHandler.Create)
				r.Get("/{id}", linkHandler.Get)
				r.Put("/{id}", linkHandler.Update)
				r.Delete("/{id}", linkHandler.Delete)
				r.Get("/{id}/qrcode", linkHandler.QRCode)
			})

			r.Get("/stats", statsHandler.Dashboard)
		})

		r.With(middleware.WithSubnet(opts.TrustedSubnet)).Get("/internal/stats", statsHandler.Internal)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
