// Package server exposes the calculation engine and the scenario store as a
// JSON API for external collaborators (web UIs, report generators).
//
// The server adds no computation of its own: every endpoint decodes an input
// record, calls one of the four pure engine functions and encodes the result.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/fleetshift/fleetshift/internal/scenario"
)

// Server holds the API dependencies.
type Server struct {
	store  scenario.Store
	logger zerolog.Logger
}

// New creates a Server. The store may be nil, in which case the scenario
// routes respond with 503.
func New(store scenario.Store, logger zerolog.Logger) *Server {
	return &Server{store: store, logger: logger}
}

// Router builds the chi routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tco", s.handleCalculate)
		r.Post("/tco/amortization", s.handleAmortization)
		r.Post("/tco/sensitivity", s.handleSensitivity)
		r.Post("/tco/recommendations", s.handleRecommendations)

		r.Get("/vehicles", s.handleVehicles)
		r.Get("/profiles", s.handleProfiles)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", s.handleScenarioList)
			r.Post("/", s.handleScenarioSave)
			r.Get("/{id}", s.handleScenarioGet)
			r.Post("/{id}/recompute", s.handleScenarioRecompute)
			r.Delete("/{id}", s.handleScenarioDelete)
		})
	})

	return r
}

// ListenAndServe runs the API on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info().Str("addr", addr).Msg("api listening")
	return srv.ListenAndServe()
}
