// Package tracker wires the routine store, log store, session engine and
// statistics into the operations the outer surfaces expose.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/claude/ironlog/internal/logs"
	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/routines"
	"github.com/claude/ironlog/internal/session"
	"github.com/claude/ironlog/internal/stats"
	"github.com/claude/ironlog/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrRoutineNotFound = errors.New("routine not found")
	ErrLogNotFound     = errors.New("workout log not found")
)

// Tracker is the application facade shared by the HTTP API and the MCP server.
type Tracker struct {
	routines *routines.Store
	logs     *logs.Store
	engine   *session.Engine
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Tracker.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

// WithClock overrides time.Now for the engine, routine stamps and statistics.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDs overrides identifier generation for sessions and logs.
func WithIDs(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// New loads all state from kv and resumes an interrupted session if one was
// checkpointed.
func New(ctx context.Context, kv storage.KV, log *slog.Logger, opts ...Option) *Tracker {
	o := options{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tracker{
		routines: routines.NewStore(ctx, kv, log, routines.WithClock(o.now)),
		logs:     logs.NewStore(ctx, kv, log),
		engine: session.New(ctx, storage.NewSessionCheckpoint(kv), log,
			session.WithClock(o.now), session.WithIDs(o.newID)),
		log: log,
		now: o.now,
	}
	log.Info("tracker loaded",
		"routines", len(t.routines.List()),
		"logs", len(t.logs.List()),
		"session", t.engine.State().String(),
	)
	return t
}

// Reload re-reads routines and history from storage, picking up writes made
// by another process sharing it. The active session is not reloaded.
func (t *Tracker) Reload(ctx context.Context) {
	t.routines.Reload(ctx)
	t.logs.Reload(ctx)
}

// Routines returns all routines in creation order.
func (t *Tracker) Routines() []models.Routine {
	return t.routines.List()
}

// Routine returns one routine.
func (t *Tracker) Routine(id string) (models.Routine, error) {
	r, ok := t.routines.Get(id)
	if !ok {
		return models.Routine{}, ErrRoutineNotFound
	}
	return r, nil
}

// CreateRoutine validates and stores a new routine. Exercise lines without
// identities are assigned fresh ones; lines without a set target take the
// editor defaults.
func (t *Tracker) CreateRoutine(ctx context.Context, name string, exercises []models.RoutineExercise) (models.Routine, error) {
	lines, err := routines.PrepareExercises(exercises)
	if err != nil {
		return models.Routine{}, err
	}
	r, err := routines.New(name, lines, t.now())
	if err != nil {
		return models.Routine{}, err
	}
	t.routines.Add(ctx, r)
	t.log.Info("routine created", "id", r.ID, "name", r.Name, "exercises", len(r.Exercises))
	return r, nil
}

// UpdateRoutine replaces an existing routine's name and exercises. The name is
// trimmed and must not be blank; the exercise list may be empty.
func (t *Tracker) UpdateRoutine(ctx context.Context, r models.Routine) (models.Routine, error) {
	r, err := routines.Prepare(r)
	if err != nil {
		return models.Routine{}, err
	}
	if !t.routines.Update(ctx, r) {
		return models.Routine{}, ErrRoutineNotFound
	}
	updated, _ := t.routines.Get(r.ID)
	return updated, nil
}

// DeleteRoutine removes a routine. Its logs and any session started from it
// are kept.
func (t *Tracker) DeleteRoutine(ctx context.Context, id string) error {
	if !t.routines.Delete(ctx, id) {
		return ErrRoutineNotFound
	}
	t.log.Info("routine deleted", "id", id)
	return nil
}

// LastLog returns the most recent log for a routine, or nil.
func (t *Tracker) LastLog(routineID string) *models.WorkoutLog {
	l, _ := t.logs.LastForRoutine(routineID)
	return l
}

// SuggestExercises filters the exercise catalogue.
func (t *Tracker) SuggestExercises(query string, existing []string) []string {
	return routines.Suggest(query, existing)
}

// StartWorkout begins a session from a routine, seeding weights and reps from
// that routine's most recent log.
func (t *Tracker) StartWorkout(ctx context.Context, routineID string) (*models.ActiveWorkout, error) {
	r, ok := t.routines.Get(routineID)
	if !ok {
		return nil, ErrRoutineNotFound
	}
	previous, _ := t.logs.LastForRoutine(routineID)
	return t.engine.Start(ctx, r, previous)
}

// ActiveWorkout returns the current session, if any.
func (t *Tracker) ActiveWorkout() (*models.ActiveWorkout, bool) {
	return t.engine.Active()
}

// UpdateSet edits one set of the active session.
func (t *Tracker) UpdateSet(ctx context.Context, exerciseID, setID string, u session.SetUpdate) {
	t.engine.UpdateSet(ctx, exerciseID, setID, u)
}

// AddSet appends a set to an exercise of the active session.
func (t *Tracker) AddSet(ctx context.Context, exerciseID string) {
	t.engine.AddSet(ctx, exerciseID)
}

// RemoveSet deletes a set from the active session.
func (t *Tracker) RemoveSet(ctx context.Context, exerciseID, setID string) {
	t.engine.RemoveSet(ctx, exerciseID, setID)
}

// FinishWorkout closes the session and records its log. Returns nil when no
// session was in progress.
func (t *Tracker) FinishWorkout(ctx context.Context) *models.WorkoutLog {
	l := t.engine.Finish(ctx)
	if l == nil {
		return nil
	}
	t.logs.Add(ctx, *l)
	return l
}

// CancelWorkout discards the session without recording anything.
func (t *Tracker) CancelWorkout(ctx context.Context) {
	t.engine.Cancel(ctx)
}

// Logs returns workout history, newest first.
func (t *Tracker) Logs() []models.WorkoutLog {
	return t.logs.List()
}

// LogsBetween returns logs completed in [start, end), newest first.
func (t *Tracker) LogsBetween(start, end time.Time) []models.WorkoutLog {
	all := t.logs.List()
	out := make([]models.WorkoutLog, 0, len(all))
	for _, l := range all {
		if !l.CompletedAt.Before(start) && l.CompletedAt.Before(end) {
			out = append(out, l)
		}
	}
	return out
}

// Log returns one workout log.
func (t *Tracker) Log(id string) (models.WorkoutLog, error) {
	l, ok := t.logs.Get(id)
	if !ok {
		return models.WorkoutLog{}, ErrLogNotFound
	}
	return l, nil
}

// DeleteLog removes a workout log.
func (t *Tracker) DeleteLog(ctx context.Context, id string) error {
	if !t.logs.Delete(ctx, id) {
		return ErrLogNotFound
	}
	t.log.Info("workout log deleted", "id", id)
	return nil
}

// Stats computes the default statistics report.
func (t *Tracker) Stats() stats.Report {
	return stats.Compute(t.logs.List(), t.now())
}

// Summary returns lifetime totals, or nil with no history.
func (t *Tracker) Summary() *stats.Summary {
	return stats.Summarize(t.logs.List())
}

// DailyRollup returns the last days calendar days of activity.
func (t *Tracker) DailyRollup(days int) []stats.DayBucket {
	return stats.DailyRollup(t.logs.List(), t.now(), days)
}

// TopExercises returns the limit exercises with the most completed volume.
func (t *Tracker) TopExercises(limit int) []stats.ExerciseStat {
	return stats.TopExercises(t.logs.List(), limit)
}

// Streak returns the current run of consecutive workout days.
func (t *Tracker) Streak() int {
	return stats.Streak(t.logs.List(), t.now())
}
