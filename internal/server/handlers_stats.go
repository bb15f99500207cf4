package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/claude/ironlog/internal/stats"
)

const (
	maxRollupDays   = 366
	maxTopExercises = 100
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Stats())
}

func (s *Server) handleDailyRollup(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", stats.DefaultWindowDays, maxRollupDays)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.DailyRollup(days))
}

func (s *Server) handleTopExercises(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", stats.DefaultTopExercises, maxTopExercises)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.TopExercises(limit))
}

// intParam parses a positive integer query parameter bounded by upper.
func intParam(r *http.Request, name string, def, upper int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > upper {
		return 0, fmt.Errorf("%s must be an integer between 1 and %d", name, upper)
	}
	return n, nil
}
