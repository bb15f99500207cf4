package logs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
)

// Store holds completed workouts, most recent first.
type Store struct {
	kv  storage.KV
	log *slog.Logger

	mu   sync.RWMutex
	logs []models.WorkoutLog
}

// NewStore loads the persisted history, starting empty when none is stored.
func NewStore(ctx context.Context, kv storage.KV, log *slog.Logger) *Store {
	return &Store{
		kv:   kv,
		log:  log,
		logs: storage.Load(ctx, kv, storage.KeyLogs, []models.WorkoutLog{}, log),
	}
}

// Reload replaces the in-memory history with the persisted record. A failed
// read keeps the current history.
func (s *Store) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = storage.Load(ctx, s.kv, storage.KeyLogs, s.logs, s.log)
}

// List returns the full history, newest first.
func (s *Store) List() []models.WorkoutLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.WorkoutLog, len(s.logs))
	for i, l := range s.logs {
		out[i] = clone(l)
	}
	return out
}

// Get returns the log with id.
func (s *Store) Get(id string) (models.WorkoutLog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.logs {
		if l.ID == id {
			return clone(l), true
		}
	}
	return models.WorkoutLog{}, false
}

// Add prepends l.
func (s *Store) Add(ctx context.Context, l models.WorkoutLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append([]models.WorkoutLog{clone(l)}, s.logs...)
	s.persist(ctx)
}

// Delete removes the log with id.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.logs {
		if s.logs[i].ID == id {
			s.logs = append(s.logs[:i], s.logs[i+1:]...)
			s.persist(ctx)
			return true
		}
	}
	return false
}

// LastForRoutine returns the most recent log started from routineID.
func (s *Store) LastForRoutine(routineID string) (*models.WorkoutLog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.logs {
		if l.RoutineID == routineID {
			c := clone(l)
			return &c, true
		}
	}
	return nil, false
}

func (s *Store) persist(ctx context.Context) {
	storage.Save(ctx, s.kv, storage.KeyLogs, s.logs, s.log)
}

func clone(l models.WorkoutLog) models.WorkoutLog {
	l.Exercises = models.CloneExercises(l.Exercises)
	return l
}
