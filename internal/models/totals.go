package models

// Volume returns weight × reps for the set, regardless of completion.
func (s ExerciseSet) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// WorkoutTotals holds aggregates over completed sets.
type WorkoutTotals struct {
	Volume float64 `json:"volume"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
}

// Add accumulates one set. Uncompleted sets are ignored.
func (t *WorkoutTotals) Add(s ExerciseSet) {
	if !s.Completed {
		return
	}
	t.Volume += s.Volume()
	t.Sets++
	t.Reps += s.Reps
}

// Totals sums volume, set count and reps over every completed set.
// Exercises without sets contribute nothing.
func Totals(exercises []WorkoutExercise) WorkoutTotals {
	var t WorkoutTotals
	for _, ex := range exercises {
		for _, s := range ex.Sets {
			t.Add(s)
		}
	}
	return t
}

// CloneExercises returns a deep copy so callers never share set slices.
func CloneExercises(exercises []WorkoutExercise) []WorkoutExercise {
	if exercises == nil {
		return nil
	}
	out := make([]WorkoutExercise, len(exercises))
	for i, ex := range exercises {
		out[i] = ex
		out[i].Sets = append([]ExerciseSet(nil), ex.Sets...)
	}
	return out
}

// Clone returns a deep copy of the active workout.
func (w *ActiveWorkout) Clone() *ActiveWorkout {
	if w == nil {
		return nil
	}
	c := *w
	c.Exercises = CloneExercises(w.Exercises)
	return &c
}

// Clone returns a deep copy of the routine.
func (r Routine) Clone() Routine {
	c := r
	c.Exercises = append([]RoutineExercise(nil), r.Exercises...)
	return c
}

// FindExercise returns the exercise with the given exercise identifier.
func (l *WorkoutLog) FindExercise(exerciseID string) (WorkoutExercise, bool) {
	if l == nil {
		return WorkoutExercise{}, false
	}
	for _, ex := range l.Exercises {
		if ex.ExerciseID == exerciseID {
			return ex, true
		}
	}
	return WorkoutExercise{}, false
}
