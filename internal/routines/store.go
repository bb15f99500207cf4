package routines

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
)

// Store owns the user's routines. Every mutation is written through to the
// KV record; write failures are logged by storage.Save and otherwise ignored.
type Store struct {
	kv  storage.KV
	log *slog.Logger
	now func() time.Time

	mu       sync.RWMutex
	routines []models.Routine
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides time.Now for UpdatedAt stamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore loads the persisted routines, starting empty when none are stored.
func NewStore(ctx context.Context, kv storage.KV, log *slog.Logger, opts ...StoreOption) *Store {
	s := &Store{
		kv:       kv,
		log:      log,
		now:      time.Now,
		routines: storage.Load(ctx, kv, storage.KeyRoutines, []models.Routine{}, log),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reload replaces the in-memory routines with the persisted record. A failed
// read keeps the current list.
func (s *Store) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routines = storage.Load(ctx, s.kv, storage.KeyRoutines, s.routines, s.log)
}

// List returns all routines in creation order.
func (s *Store) List() []models.Routine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Routine, len(s.routines))
	for i, r := range s.routines {
		out[i] = r.Clone()
	}
	return out
}

// Get returns the routine with id.
func (s *Store) Get(id string) (models.Routine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.routines {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return models.Routine{}, false
}

// Add appends r. The store does not validate; see New.
func (s *Store) Add(ctx context.Context, r models.Routine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routines = append(s.routines, r.Clone())
	s.persist(ctx)
}

// Update replaces the routine with r.ID wholesale and stamps UpdatedAt.
// Returns false if no such routine exists.
func (s *Store) Update(ctx context.Context, r models.Routine) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.routines {
		if s.routines[i].ID != r.ID {
			continue
		}
		r = r.Clone()
		r.CreatedAt = s.routines[i].CreatedAt
		r.UpdatedAt = s.now()
		s.routines[i] = r
		s.persist(ctx)
		return true
	}
	return false
}

// Delete removes the routine with id. Logs referencing it are untouched.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.routines {
		if s.routines[i].ID == id {
			s.routines = append(s.routines[:i], s.routines[i+1:]...)
			s.persist(ctx)
			return true
		}
	}
	return false
}

func (s *Store) persist(ctx context.Context) {
	storage.Save(ctx, s.kv, storage.KeyRoutines, s.routines, s.log)
}
