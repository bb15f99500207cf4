package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/ironlog/internal/tracker"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	tracker *tracker.Tracker
	log     *slog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(t *tracker.Tracker, log *slog.Logger) *Server {
	s := &Server{
		tracker: t,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// No auth; access is limited by the listener (localhost or tailnet).
	s.router.Route("/api/v1/routines", func(r chi.Router) {
		r.Get("/", s.handleListRoutines)
		r.Post("/", s.handleCreateRoutine)
		r.Get("/{id}", s.handleGetRoutine)
		r.Put("/{id}", s.handleReplaceRoutine)
		r.Delete("/{id}", s.handleDeleteRoutine)
		r.Get("/{id}/last-log", s.handleLastLog)
		r.Post("/{id}/start", s.handleStartWorkout)
	})
	s.router.Get("/api/v1/exercises/suggestions", s.handleSuggestions)

	s.router.Route("/api/v1/session", func(r chi.Router) {
		r.Get("/", s.handleGetSession)
		r.Delete("/", s.handleCancelSession)
		r.Post("/finish", s.handleFinishSession)
		r.Post("/exercises/{exerciseID}/sets", s.handleAddSet)
		r.Patch("/exercises/{exerciseID}/sets/{setID}", s.handleUpdateSet)
		r.Delete("/exercises/{exerciseID}/sets/{setID}", s.handleRemoveSet)
	})

	s.router.Get("/api/v1/logs", s.handleListLogs)
	s.router.Get("/api/v1/logs/{id}", s.handleGetLog)
	s.router.Delete("/api/v1/logs/{id}", s.handleDeleteLog)

	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/stats/daily", s.handleDailyRollup)
	s.router.Get("/api/v1/stats/exercises", s.handleTopExercises)
}
