// Package session implements the active-workout lifecycle: a routine is
// materialized into a single editable session, edited set by set, and either
// finished into an immutable workout log or discarded.
package session

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// ErrSessionAlreadyActive is returned by Start while another session is in progress.
var ErrSessionAlreadyActive = errors.New("a workout session is already in progress")

// State is the engine's lifecycle state.
type State int

const (
	Idle State = iota
	InProgress
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InProgress:
		return "in_progress"
	default:
		return "unknown"
	}
}

// Checkpoint persists the active workout so it survives a restart.
type Checkpoint interface {
	Get(ctx context.Context) (*models.ActiveWorkout, error)
	Set(ctx context.Context, w *models.ActiveWorkout) error
	Clear(ctx context.Context) error
}

// SetUpdate is a partial set edit; nil fields are left unchanged.
type SetUpdate struct {
	Weight    *float64 `json:"weight,omitempty"`
	Reps      *int     `json:"reps,omitempty"`
	Completed *bool    `json:"completed,omitempty"`
}

// Engine owns the single active session.
type Engine struct {
	cp    Checkpoint
	log   *slog.Logger
	now   func() time.Time
	newID func() string

	mu     sync.Mutex
	state  State
	active *models.ActiveWorkout
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs overrides identifier generation.
func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New creates an engine and resumes a checkpointed session if one exists.
// An unreadable checkpoint is logged and treated as no session.
func New(ctx context.Context, cp Checkpoint, log *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		cp:    cp,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}

	w, err := cp.Get(ctx)
	if err != nil {
		log.Warn("failed to read session checkpoint, starting idle", "error", err)
		return e
	}
	if w != nil {
		e.state = InProgress
		e.active = w
		log.Info("resumed workout session", "routine", w.RoutineName, "started_at", w.StartedAt)
	}
	return e
}

// State reports whether a session is in progress.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Active returns a copy of the current session.
func (e *Engine) Active() (*models.ActiveWorkout, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != InProgress {
		return nil, false
	}
	return e.active.Clone(), true
}

// Start materializes routine into a new session. Each exercise gets exactly
// routine.Sets sets; set i is seeded from set i of the matching exercise in
// previous (matched by exercise id) when present, else from the routine
// defaults. New sets are never completed.
func (e *Engine) Start(ctx context.Context, routine models.Routine, previous *models.WorkoutLog) (*models.ActiveWorkout, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == InProgress {
		return nil, ErrSessionAlreadyActive
	}

	exercises := make([]models.WorkoutExercise, 0, len(routine.Exercises))
	for _, re := range routine.Exercises {
		prev, _ := previous.FindExercise(re.ExerciseID)
		sets := make([]models.ExerciseSet, max(re.Sets, 0))
		for i := range sets {
			sets[i] = e.seedSet(re, prev.Sets, i)
		}
		exercises = append(exercises, models.WorkoutExercise{
			ID:           e.newID(),
			ExerciseID:   re.ExerciseID,
			ExerciseName: re.ExerciseName,
			Sets:         sets,
		})
	}

	e.active = &models.ActiveWorkout{
		RoutineID:   routine.ID,
		RoutineName: routine.Name,
		Exercises:   exercises,
		StartedAt:   e.now(),
	}
	e.state = InProgress
	e.checkpoint(ctx)

	e.log.Info("workout started", "routine", routine.Name, "exercises", len(exercises), "seeded", previous != nil)
	return e.active.Clone(), nil
}

func (e *Engine) seedSet(re models.RoutineExercise, prev []models.ExerciseSet, i int) models.ExerciseSet {
	set := models.ExerciseSet{ID: e.newID()}
	if i < len(prev) {
		set.Weight = prev[i].Weight
		set.Reps = prev[i].Reps
		return set
	}
	if re.DefaultWeight != nil {
		set.Weight = *re.DefaultWeight
	}
	if re.DefaultReps != nil {
		set.Reps = *re.DefaultReps
	}
	return set
}

// UpdateSet applies u to the matching set. Misses are silent no-ops.
func (e *Engine) UpdateSet(ctx context.Context, exerciseID, setID string, u SetUpdate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	set := e.findSet(exerciseID, setID)
	if set == nil {
		return
	}
	if u.Weight != nil {
		set.Weight = *u.Weight
	}
	if u.Reps != nil {
		set.Reps = *u.Reps
	}
	if u.Completed != nil {
		set.Completed = *u.Completed
	}
	e.checkpoint(ctx)
}

// AddSet appends a set copying weight/reps from the exercise's last set.
func (e *Engine) AddSet(ctx context.Context, exerciseID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ex := e.findExercise(exerciseID)
	if ex == nil {
		return
	}
	set := models.ExerciseSet{ID: e.newID()}
	if n := len(ex.Sets); n > 0 {
		set.Weight = ex.Sets[n-1].Weight
		set.Reps = ex.Sets[n-1].Reps
	}
	ex.Sets = append(ex.Sets, set)
	e.checkpoint(ctx)
}

// RemoveSet deletes the matching set. Removing an exercise's last set is
// allowed; the exercise then contributes nothing to the log totals.
func (e *Engine) RemoveSet(ctx context.Context, exerciseID, setID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ex := e.findExercise(exerciseID)
	if ex == nil {
		return
	}
	for i := range ex.Sets {
		if ex.Sets[i].ID == setID {
			ex.Sets = append(ex.Sets[:i], ex.Sets[i+1:]...)
			e.checkpoint(ctx)
			return
		}
	}
}

// Finish closes the session and returns its log, or nil when idle. The caller
// owns storing the log.
func (e *Engine) Finish(ctx context.Context) *models.WorkoutLog {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != InProgress {
		return nil
	}

	completedAt := e.now()
	totals := models.Totals(e.active.Exercises)
	log := &models.WorkoutLog{
		ID:          e.newID(),
		RoutineID:   e.active.RoutineID,
		RoutineName: e.active.RoutineName,
		Exercises:   models.CloneExercises(e.active.Exercises),
		StartedAt:   e.active.StartedAt,
		CompletedAt: completedAt,
		Duration:    int64(math.Floor(completedAt.Sub(e.active.StartedAt).Seconds())),
		TotalVolume: totals.Volume,
		TotalSets:   totals.Sets,
		TotalReps:   totals.Reps,
	}

	e.reset(ctx)
	e.log.Info("workout finished",
		"routine", log.RoutineName,
		"duration_sec", log.Duration,
		"volume", log.TotalVolume,
		"sets", log.TotalSets,
	)
	return log
}

// Cancel discards the session. Safe to call when idle.
func (e *Engine) Cancel(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == InProgress {
		e.log.Info("workout cancelled", "routine", e.active.RoutineName)
	}
	e.reset(ctx)
}

func (e *Engine) reset(ctx context.Context) {
	e.state = Idle
	e.active = nil
	if err := e.cp.Clear(ctx); err != nil {
		e.log.Error("failed to clear session checkpoint", "error", err)
	}
}

func (e *Engine) checkpoint(ctx context.Context) {
	if err := e.cp.Set(ctx, e.active); err != nil {
		e.log.Error("failed to save session checkpoint", "error", err)
	}
}

func (e *Engine) findExercise(exerciseID string) *models.WorkoutExercise {
	if e.state != InProgress {
		return nil
	}
	for i := range e.active.Exercises {
		if e.active.Exercises[i].ID == exerciseID {
			return &e.active.Exercises[i]
		}
	}
	return nil
}

func (e *Engine) findSet(exerciseID, setID string) *models.ExerciseSet {
	ex := e.findExercise(exerciseID)
	if ex == nil {
		return nil
	}
	for i := range ex.Sets {
		if ex.Sets[i].ID == setID {
			return &ex.Sets[i]
		}
	}
	return nil
}
