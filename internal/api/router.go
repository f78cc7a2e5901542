package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// NewRouter builds the Chi router. The per-IP limit guards against burst
// abuse; the daily and monthly caps live in the handlers.
func NewRouter(h *Handlers, allowedOrigins []string, requestsPerMinute int) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(httprate.LimitByIP(requestsPerMinute, time.Minute))

	r.Get("/health", h.Health)
	r.Get("/usage", h.Usage)
	r.Post("/plan", h.Plan)
	r.Post("/plan/stream", h.PlanStream)

	return r
}
