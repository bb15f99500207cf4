package models

import "time"

// Routine is a reusable workout template.
type Routine struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Exercises []RoutineExercise `json:"exercises"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// RoutineExercise is one line item of a routine. ExerciseID is shared with the
// workout exercises started from it and is what previous-log carry-over matches on.
type RoutineExercise struct {
	ID            string   `json:"id"`
	ExerciseID    string   `json:"exerciseId"`
	ExerciseName  string   `json:"exerciseName"`
	Sets          int      `json:"sets"`
	DefaultWeight *float64 `json:"defaultWeight,omitempty"`
	DefaultReps   *int     `json:"defaultReps,omitempty"`
}

// ExerciseSet is a single performed (or planned) set.
type ExerciseSet struct {
	ID        string  `json:"id"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	Completed bool    `json:"completed"`
}

// WorkoutExercise is an exercise inside an active session or a finished log.
type WorkoutExercise struct {
	ID           string        `json:"id"`
	ExerciseID   string        `json:"exerciseId"`
	ExerciseName string        `json:"exerciseName"`
	Sets         []ExerciseSet `json:"sets"`
}

// ActiveWorkout is the single in-progress session.
type ActiveWorkout struct {
	RoutineID   string            `json:"routineId"`
	RoutineName string            `json:"routineName"`
	Exercises   []WorkoutExercise `json:"exercises"`
	StartedAt   time.Time         `json:"startedAt"`
}

// WorkoutLog is the immutable record of a finished session.
type WorkoutLog struct {
	ID          string            `json:"id"`
	RoutineID   string            `json:"routineId"`
	RoutineName string            `json:"routineName"`
	Exercises   []WorkoutExercise `json:"exercises"`
	StartedAt   time.Time         `json:"startedAt"`
	CompletedAt time.Time         `json:"completedAt"`
	Duration    int64             `json:"duration"` // seconds
	TotalVolume float64           `json:"totalVolume"`
	TotalSets   int               `json:"totalSets"`
	TotalReps   int               `json:"totalReps"`
}
