package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/ironlog/internal/session"
	"github.com/claude/ironlog/internal/tracker"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleStartWorkout(w http.ResponseWriter, r *http.Request) {
	active, err := s.tracker.StartWorkout(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, tracker.ErrRoutineNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, session.ErrSessionAlreadyActive):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case err != nil:
		s.log.Error("start workout error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusCreated, active)
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.writeSession(w)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	s.tracker.CancelWorkout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	l := s.tracker.FinishWorkout(r.Context())
	if l == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	s.tracker.AddSet(r.Context(), chi.URLParam(r, "exerciseID"))
	s.writeSession(w)
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var u session.SetUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.tracker.UpdateSet(r.Context(), chi.URLParam(r, "exerciseID"), chi.URLParam(r, "setID"), u)
	s.writeSession(w)
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	s.tracker.RemoveSet(r.Context(), chi.URLParam(r, "exerciseID"), chi.URLParam(r, "setID"))
	s.writeSession(w)
}

// writeSession responds with the active session, or 204 when idle.
func (s *Server) writeSession(w http.ResponseWriter) {
	active, ok := s.tracker.ActiveWorkout()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, active)
}
