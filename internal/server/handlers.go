package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/routines"
	"github.com/claude/ironlog/internal/tracker"
	"github.com/go-chi/chi/v5"
)

type createRoutineRequest struct {
	Name      string                   `json:"name"`
	Exercises []models.RoutineExercise `json:"exercises"`
}

func (s *Server) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Routines())
}

func (s *Server) handleCreateRoutine(w http.ResponseWriter, r *http.Request) {
	var req createRoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	routine, err := s.tracker.CreateRoutine(r.Context(), req.Name, req.Exercises)
	if err != nil {
		writeJSON(w, routineErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, routine)
}

func (s *Server) handleGetRoutine(w http.ResponseWriter, r *http.Request) {
	routine, err := s.tracker.Routine(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (s *Server) handleReplaceRoutine(w http.ResponseWriter, r *http.Request) {
	var routine models.Routine
	if err := json.NewDecoder(r.Body).Decode(&routine); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	routine.ID = chi.URLParam(r, "id")

	updated, err := s.tracker.UpdateRoutine(r.Context(), routine)
	if err != nil {
		writeJSON(w, routineErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteRoutine(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLastLog(w http.ResponseWriter, r *http.Request) {
	l := s.tracker.LastLog(chi.URLParam(r, "id"))
	if l == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.tracker.SuggestExercises(q.Get("q"), q["exclude"]))
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if start.IsZero() {
		writeJSON(w, http.StatusOK, s.tracker.Logs())
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.LogsBetween(start, end))
}

func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	l, err := s.tracker.Log(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteLog(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func routineErrorStatus(err error) int {
	switch {
	case errors.Is(err, tracker.ErrRoutineNotFound):
		return http.StatusNotFound
	case errors.Is(err, routines.ErrEmptyName),
		errors.Is(err, routines.ErrNoExercises),
		errors.Is(err, routines.ErrEmptyExerciseName),
		errors.Is(err, routines.ErrInvalidSets):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads optional start/end query parameters (RFC 3339 or
// YYYY-MM-DD). A zero start means no filter was requested.
func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}
