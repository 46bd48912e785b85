// Package server exposes the planner's operations over a small REST API:
// schedule generation, catalog management, markdown log ingest, progress
// queries, and progression analytics.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftplan/internal/advisor"
	"github.com/claude/liftplan/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	catalog  *storage.CatalogStore
	progress *storage.ProgressStore
	advisor  advisor.Provider
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(catalog *storage.CatalogStore, progress *storage.ProgressStore, adv advisor.Provider, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		catalog:  catalog,
		progress: progress,
		advisor:  adv,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/log", s.handleLogWorkout)
		r.Post("/api/v1/catalog/{category}", s.handleAddExercise)
		r.Delete("/api/v1/catalog/{category}", s.handleRemoveExercise)
	})

	// Read endpoints
	s.router.Get("/api/v1/catalog", s.handleGetCatalog)
	s.router.Get("/api/v1/schedule", s.handleGetSchedule)
	s.router.Get("/api/v1/schedule/markdown", s.handleGetScheduleMarkdown)
	s.router.Get("/api/v1/progress", s.handleGetProgress)
	s.router.Get("/api/v1/analyze", s.handleAnalyze)
	s.router.Get("/api/v1/suggest", s.handleSuggest)
}
