package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deskhive/deskhive/internal/api"
	"github.com/deskhive/deskhive/internal/api/handlers"
	"github.com/deskhive/deskhive/internal/api/middleware"
)

type RouterConfig struct {
	ActorResolver    middleware.ActorResolver
	AuthHandler      *handlers.AuthHandler
	TicketHandler    *handlers.TicketHandler
	KnowledgeHandler *handlers.KnowledgeHandler
	StatsHandler     *handlers.StatsHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.ActorAuth(cfg.ActorResolver))

			r.Get("/users/me", cfg.AuthHandler.Me)

			r.Route("/tickets", func(r chi.Router) {
				r.Post("/", cfg.TicketHandler.Create)
				r.Get("/my", cfg.TicketHandler.ListMine)
				r.Get("/open", cfg.TicketHandler.ListOpen)
				r.Get("/assigned", cfg.TicketHandler.ListAssigned)
				r.Get("/{id}", cfg.TicketHandler.Get)
				r.Put("/{id}/assign", cfg.TicketHandler.Assign)
				r.Get("/{id}/recommendations", cfg.TicketHandler.Recommendations)
				r.Post("/{id}/resolve", cfg.TicketHandler.Resolve)
				r.Post("/{id}/confirm", cfg.TicketHandler.Confirm)
			})

			r.Route("/knowledge", func(r chi.Router) {
				r.Get("/", cfg.KnowledgeHandler.List)
				r.Get("/{id}", cfg.KnowledgeHandler.Get)
			})

			r.Get("/stats", cfg.StatsHandler.Get)
		})
	})

	return r
}
