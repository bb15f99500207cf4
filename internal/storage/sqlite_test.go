package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestDB(t *testing.T) KV {
	t.Helper()
	kv, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "data", "ironlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

// TestSQLiteGetSetDelete verifies the basic KV contract including ErrNotFound
// for absent and deleted keys.
func TestSQLiteGetSetDelete(t *testing.T) {
	ctx := context.Background()
	kv := openTestDB(t)

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", []byte(`[1]`)))
	require.NoError(t, kv.Set(ctx, "k", []byte(`[1,2]`)))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	require.NoError(t, kv.Delete(ctx, "k"))
	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestOpenIsIdempotent verifies migrations can run against an existing file.
func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ironlog.db")
	ctx := context.Background()

	kv, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, KeyLogs, []byte(`[]`)))
	require.NoError(t, kv.Close())

	kv, err = Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer kv.Close()
	got, err := kv.Get(ctx, KeyLogs)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

// TestOpenUnknownDriver verifies a misconfigured driver is rejected.
func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mongo", "x")
	assert.Error(t, err)
}

// TestLoadDefaults verifies absent and corrupt records fall back to the default.
func TestLoadDefaults(t *testing.T) {
	ctx := context.Background()
	kv := openTestDB(t)
	log := discardLogger()

	got := Load(ctx, kv, KeyRoutines, []models.Routine{}, log)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, kv.Set(ctx, KeyRoutines, []byte(`{not json`)))
	got = Load(ctx, kv, KeyRoutines, []models.Routine{}, log)
	assert.Empty(t, got)
}

type failingKV struct{ KV }

func (failingKV) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (failingKV) Set(context.Context, string, []byte) error { return errors.New("disk on fire") }
func (failingKV) Delete(context.Context, string) error { return errors.New("disk on fire") }

// TestSaveSwallowsFailures verifies that write failures never panic or surface,
// and read failures substitute the default. Checkpoint clears report the
// failure to the session engine, which logs it.
func TestSaveSwallowsFailures(t *testing.T) {
	ctx := context.Background()
	kv := failingKV{}
	log := discardLogger()

	Save(ctx, kv, KeyLogs, []models.WorkoutLog{{ID: "a"}}, log)
	assert.Error(t, NewSessionCheckpoint(kv).Clear(ctx))
	got := Load(ctx, kv, KeyLogs, []models.WorkoutLog{}, log)
	assert.Empty(t, got)
}

func routineGen() *rapid.Generator[models.Routine] {
	return rapid.Custom(func(t *rapid.T) models.Routine {
		n := rapid.IntRange(0, 6).Draw(t, "exercises")
		exercises := make([]models.RoutineExercise, n)
		for i := range exercises {
			ex := models.RoutineExercise{
				ID:           rapid.StringMatching(`[a-f0-9]{8}`).Draw(t, "id"),
				ExerciseID:   rapid.StringMatching(`[a-f0-9]{8}`).Draw(t, "exerciseId"),
				ExerciseName: rapid.StringMatching(`[A-Za-z ]{1,20}`).Draw(t, "name"),
				Sets:         rapid.IntRange(1, 10).Draw(t, "sets"),
			}
			if rapid.Bool().Draw(t, "hasWeight") {
				w := float64(rapid.IntRange(0, 400).Draw(t, "weight")) / 2
				ex.DefaultWeight = &w
			}
			if rapid.Bool().Draw(t, "hasReps") {
				r := rapid.IntRange(0, 50).Draw(t, "reps")
				ex.DefaultReps = &r
			}
			exercises[i] = ex
		}
		created := time.Unix(rapid.Int64Range(0, 2_000_000_000).Draw(t, "created"), 0).UTC()
		return models.Routine{
			ID:        rapid.StringMatching(`[a-f0-9]{8}`).Draw(t, "routineId"),
			Name:      rapid.StringMatching(`[A-Za-z ]{1,30}`).Draw(t, "routineName"),
			Exercises: exercises,
			CreatedAt: created,
			UpdatedAt: created.Add(time.Hour),
		}
	})
}

// TestRoutineRoundTrip is a property test: every routine survives Save/Load
// with all fields and exercise order intact.
func TestRoutineRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := openTestDB(t)
	log := discardLogger()

	rapid.Check(t, func(rt *rapid.T) {
		routines := rapid.SliceOfN(routineGen(), 0, 4).Draw(rt, "routines")

		Save(ctx, kv, KeyRoutines, routines, log)
		got := Load(ctx, kv, KeyRoutines, []models.Routine{}, log)

		if len(got) != len(routines) {
			rt.Fatalf("len = %d, want %d", len(got), len(routines))
		}
		for i := range routines {
			if len(got[i].Exercises) != len(routines[i].Exercises) {
				rt.Fatalf("routine %d exercises = %d, want %d", i, len(got[i].Exercises), len(routines[i].Exercises))
			}
			if !assert.ObjectsAreEqual(routines[i].Exercises, normalizeNil(got[i].Exercises, routines[i].Exercises)) {
				rt.Fatalf("routine %d exercises differ: %+v vs %+v", i, got[i].Exercises, routines[i].Exercises)
			}
			if got[i].ID != routines[i].ID || got[i].Name != routines[i].Name ||
				!got[i].CreatedAt.Equal(routines[i].CreatedAt) || !got[i].UpdatedAt.Equal(routines[i].UpdatedAt) {
				rt.Fatalf("routine %d differs: %+v vs %+v", i, got[i], routines[i])
			}
		}
	})
}

// normalizeNil maps an empty decoded slice back to the original's nil-ness so
// comparison only looks at content.
func normalizeNil(got, want []models.RoutineExercise) []models.RoutineExercise {
	if len(got) == 0 && want == nil {
		return nil
	}
	if len(got) == 0 {
		return []models.RoutineExercise{}
	}
	return got
}

// TestSessionCheckpoint verifies Get/Set/Clear of the active workout record.
func TestSessionCheckpoint(t *testing.T) {
	ctx := context.Background()
	cp := NewSessionCheckpoint(openTestDB(t))

	got, err := cp.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	w := &models.ActiveWorkout{
		RoutineID:   "r1",
		RoutineName: "Push",
		StartedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Exercises: []models.WorkoutExercise{{
			ID: "e1", ExerciseID: "bench", ExerciseName: "Bench Press",
			Sets: []models.ExerciseSet{{ID: "s1", Weight: 60, Reps: 5, Completed: true}},
		}},
	}
	require.NoError(t, cp.Set(ctx, w))

	got, err = cp.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, w.RoutineID, got.RoutineID)
	assert.True(t, w.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, w.Exercises, got.Exercises)

	require.NoError(t, cp.Clear(ctx))
	got, err = cp.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
