// Package router declares the HTTP surface and its middleware chain.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/boardkit/boardkit/internal/middleware"
	"github.com/boardkit/boardkit/internal/setup"
)

func New(deps *setup.Dependencies) *chi.Mux {
	cfg := deps.Config
	h := deps.Handler

	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders(cfg.Public.SecureCookies))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.Health)
	r.Method("GET", "/metrics", promhttp.Handler())

	// credential endpoints get a per-IP budget to slow brute forcing
	authLimiter := middleware.RateLimitByIP(middleware.NewRateLimiter(1, 5, time.Hour))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(authLimiter).Post("/register", h.Register)
			r.With(authLimiter).Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})

		r.Get("/boards", h.GetBoards)
		r.Post("/boards", h.CreateBoard)
		r.Get("/active_users", h.GetActiveUsers)
		r.Get("/private_topics", h.GetPrivateTopics)

		r.Route("/users/{user}", func(r chi.Router) {
			r.Get("/activity", h.GetUserActivity)
			r.Put("/moderator", h.SetModeratorFlag)
		})

		r.Route("/{board}", func(r chi.Router) {
			r.Get("/", h.GetBoard)
			r.Post("/", h.CreateTopic)
			r.Delete("/", h.DeleteBoard)
			r.Put("/locked", h.SetBoardLocked)
			r.Get("/active_users", h.GetActiveUsers)
			r.Get("/moderators", h.GetModerators)

			r.Route("/{topic}", func(r chi.Router) {
				r.Get("/", h.GetTopic)
				r.Post("/", h.CreatePost)
				r.Delete("/", h.DeleteTopic)
				r.Put("/locked", h.SetTopicLocked)
				r.Delete("/{post}", h.DeletePost)
			})
		})
	})

	// preflight requests should not 404
	r.MethodFunc("OPTIONS", "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
