package routines

import "strings"

// SuggestedExercises is the built-in exercise catalogue offered while editing.
var SuggestedExercises = []string{
	"Bench Press", "Squat", "Deadlift", "Overhead Press", "Barbell Row",
	"Pull-ups", "Dips", "Bicep Curls", "Tricep Extensions", "Leg Press",
	"Lunges", "Calf Raises", "Lat Pulldown", "Cable Fly", "Face Pulls",
	"Romanian Deadlift", "Hip Thrust", "Leg Curl", "Leg Extension", "Plank",
}

// Suggest returns catalogue entries containing query (case-insensitive) that
// are not already in existing.
func Suggest(query string, existing []string) []string {
	q := strings.ToLower(query)
	taken := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		taken[strings.ToLower(name)] = struct{}{}
	}

	out := []string{}
	for _, name := range SuggestedExercises {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, q) {
			continue
		}
		if _, ok := taken[lower]; ok {
			continue
		}
		out = append(out, name)
	}
	return out
}
