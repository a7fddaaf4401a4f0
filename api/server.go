/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a local dashboard

ROUTE GROUPS:
  /api/runs              Run execution and history
  /api/payroll/*         Single-worker computation and receipt PDF
  /api/validate          Validation gate
  /api/datasets/*        Dataset snapshot import
  /api/payouts           Payout ledger listing
  /api/rules/*           Regulatory source check
  /api/fx                Pacted FX rate
  /api/workers           Roster listing

SECURITY NOTE:
  No authentication middleware. This serves a single household's payroll
  on localhost; do not expose it publicly as-is.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/runs", func(r chi.Router) {
			r.Post("/", h.ExecuteRun)
			r.Get("/", h.ListRuns)
		})

		r.Post("/payroll/compute", h.ComputeBreakdown)
		r.Get("/payroll/receipt", h.GetReceipt)
		r.Post("/validate", h.ValidateRoster)

		r.Post("/datasets/{worker}", h.ImportDataset)
		r.Get("/payouts", h.ListPayouts)

		r.Get("/rules/check", h.CheckRules)
		r.Get("/fx", h.GetFX)
		r.Get("/workers", h.ListWorkers)
	})

	return r
}
