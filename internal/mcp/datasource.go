package mcp

import (
	"context"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/stats"
	"github.com/claude/ironlog/internal/tracker"
)

// DataSource abstracts the data layer for MCP tools. Both TrackerSource
// (local storage) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	GetStats(ctx context.Context) (stats.Report, error)
	GetDailyRollup(ctx context.Context, days int) ([]stats.DayBucket, error)
	GetTopExercises(ctx context.Context, limit int) ([]stats.ExerciseStat, error)
	ListLogs(ctx context.Context, start, end time.Time) ([]models.WorkoutLog, error)
	ListRoutines(ctx context.Context) ([]models.Routine, error)
}

// TrackerSource serves MCP queries from an in-process tracker. Each query
// re-reads storage first so writes from a running server are visible.
type TrackerSource struct {
	t *tracker.Tracker
}

// Compile-time check: TrackerSource satisfies DataSource.
var _ DataSource = (*TrackerSource)(nil)

// NewTrackerSource wraps t.
func NewTrackerSource(t *tracker.Tracker) *TrackerSource {
	return &TrackerSource{t: t}
}

func (s *TrackerSource) GetStats(ctx context.Context) (stats.Report, error) {
	s.t.Reload(ctx)
	return s.t.Stats(), nil
}

func (s *TrackerSource) GetDailyRollup(ctx context.Context, days int) ([]stats.DayBucket, error) {
	s.t.Reload(ctx)
	return s.t.DailyRollup(days), nil
}

func (s *TrackerSource) GetTopExercises(ctx context.Context, limit int) ([]stats.ExerciseStat, error) {
	s.t.Reload(ctx)
	return s.t.TopExercises(limit), nil
}

func (s *TrackerSource) ListLogs(ctx context.Context, start, end time.Time) ([]models.WorkoutLog, error) {
	s.t.Reload(ctx)
	return s.t.LogsBetween(start, end), nil
}

func (s *TrackerSource) ListRoutines(ctx context.Context) ([]models.Routine, error) {
	s.t.Reload(ctx)
	return s.t.Routines(), nil
}
