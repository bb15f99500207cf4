package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// Keys of the three persisted records.
const (
	KeyRoutines      = "ironlog_routines"
	KeyLogs          = "ironlog_logs"
	KeyActiveWorkout = "ironlog_active_workout"
)

// ErrNotFound is returned by KV.Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("storage: key not found")

// KV is the opaque key-value persistence capability. Values are JSON blobs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Load decodes the record stored under key. A missing key, a read failure or
// an undecodable blob all yield def; only the latter two are logged.
func Load[T any](ctx context.Context, kv KV, key string, def T, log *slog.Logger) T {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn("failed to read from storage, using default", "key", key, "error", err)
		}
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warn("failed to decode stored record, using default", "key", key, "error", err)
		return def
	}
	return v
}

// Save encodes v and writes it under key. Failures are logged and swallowed:
// in-memory state stays authoritative for the rest of the process lifetime.
func Save(ctx context.Context, kv KV, key string, v any, log *slog.Logger) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("failed to encode record", "key", key, "error", err)
		return
	}
	if err := kv.Set(ctx, key, data); err != nil {
		log.Error("failed to save to storage", "key", key, "error", err)
	}
}
