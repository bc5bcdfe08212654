package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/digiwolf/leads/internal/infra/http/middleware"
)

type RouterConfig struct {
	Leads          *LeadHandler
	Admin          *AdminLeadHandler
	Auth           *AuthHandler
	Health         *HealthHandler
	Tokens         middleware.TokenParser
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Limit)
			}
			r.Post("/leads", cfg.Leads.Submit)
			r.Post("/leads/abandoned", cfg.Leads.SubmitAbandoned)
			r.Post("/admin/login", cfg.Auth.Login)
		})

		r.Get("/admin/status", cfg.Auth.Status)

		r.Route("/admin/leads", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.Tokens))

			r.Get("/", cfg.Admin.List)
			r.Get("/stats", cfg.Admin.Stats)
			r.Post("/bulk-delete", cfg.Admin.BulkDelete)
			r.Get("/{id}", cfg.Admin.Get)
			r.Patch("/{id}/status", cfg.Admin.ChangeStatus)
			r.Post("/{id}/abandon", cfg.Admin.MarkAbandoned)
			r.Delete("/{id}/abandon", cfg.Admin.UnmarkAbandoned)
		})
	})

	return r
}
