package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/ironlog/internal/models"
)

// SessionCheckpoint persists the active workout under KeyActiveWorkout so an
// interrupted session can be resumed after a restart.
type SessionCheckpoint struct {
	kv KV
}

// NewSessionCheckpoint wraps kv.
func NewSessionCheckpoint(kv KV) *SessionCheckpoint {
	return &SessionCheckpoint{kv: kv}
}

// Get returns the checkpointed workout, or nil when none is stored.
func (c *SessionCheckpoint) Get(ctx context.Context) (*models.ActiveWorkout, error) {
	data, err := c.kv.Get(ctx, KeyActiveWorkout)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var w *models.ActiveWorkout
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding active workout: %w", err)
	}
	return w, nil
}

// Set stores w.
func (c *SessionCheckpoint) Set(ctx context.Context, w *models.ActiveWorkout) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encoding active workout: %w", err)
	}
	return c.kv.Set(ctx, KeyActiveWorkout, data)
}

// Clear removes the checkpoint.
func (c *SessionCheckpoint) Clear(ctx context.Context) error {
	return c.kv.Delete(ctx, KeyActiveWorkout)
}
