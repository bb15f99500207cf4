package routines

import (
	"errors"
	"strings"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errors.New("routine name is required")
	ErrNoExercises       = errors.New("routine needs at least one exercise")
	ErrEmptyExerciseName = errors.New("exercise name is required")
	ErrInvalidSets       = errors.New("exercise sets must be a positive number")
)

// Defaults for a freshly added exercise line.
const (
	DefaultSets   = 3
	DefaultReps   = 10
	DefaultWeight = 0.0
)

// New builds a routine ready for Store.Add. The name is trimmed; a blank name
// or an empty exercise list is rejected.
func New(name string, exercises []models.RoutineExercise, now time.Time) (models.Routine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Routine{}, ErrEmptyName
	}
	if len(exercises) == 0 {
		return models.Routine{}, ErrNoExercises
	}
	return models.Routine{
		ID:        uuid.NewString(),
		Name:      name,
		Exercises: append([]models.RoutineExercise(nil), exercises...),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewExercise returns a routine line for name with the default targets.
// Each call mints a new exercise identity.
func NewExercise(name string) (models.RoutineExercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.RoutineExercise{}, ErrEmptyExerciseName
	}
	weight, reps := DefaultWeight, DefaultReps
	return models.RoutineExercise{
		ID:            uuid.NewString(),
		ExerciseID:    uuid.NewString(),
		ExerciseName:  name,
		Sets:          DefaultSets,
		DefaultWeight: &weight,
		DefaultReps:   &reps,
	}, nil
}

// PrepareExercises completes exercise lines submitted by an editor. Each line
// starts from NewExercise; identities and targets the caller did send are
// kept. A line without a set target takes the defaults.
func PrepareExercises(lines []models.RoutineExercise) ([]models.RoutineExercise, error) {
	out := make([]models.RoutineExercise, 0, len(lines))
	for _, in := range lines {
		if in.Sets < 0 {
			return nil, ErrInvalidSets
		}
		line, err := NewExercise(in.ExerciseName)
		if err != nil {
			return nil, err
		}
		if in.ID != "" {
			line.ID = in.ID
		}
		if in.ExerciseID != "" {
			line.ExerciseID = in.ExerciseID
		}
		if in.Sets > 0 {
			line.Sets = in.Sets
			line.DefaultWeight, line.DefaultReps = in.DefaultWeight, in.DefaultReps
		} else {
			if in.DefaultWeight != nil {
				line.DefaultWeight = in.DefaultWeight
			}
			if in.DefaultReps != nil {
				line.DefaultReps = in.DefaultReps
			}
		}
		out = append(out, line)
	}
	return out, nil
}

// Prepare checks a routine submitted for replacement and returns it with the
// name trimmed and its exercise lines completed. Unlike New, an edit may leave
// the routine without exercises.
func Prepare(r models.Routine) (models.Routine, error) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return models.Routine{}, ErrEmptyName
	}
	exercises, err := PrepareExercises(r.Exercises)
	if err != nil {
		return models.Routine{}, err
	}
	r.Exercises = exercises
	return r, nil
}
