// Package stats derives summaries, streaks, daily rollups and exercise
// rankings from workout history. Every function is a pure computation over
// its arguments; callers pass "now", whose Location defines calendar days.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/claude/ironlog/internal/models"
)

// Defaults used by the statistics views.
const (
	DefaultWindowDays   = 30
	DefaultTopExercises = 5
)

// Summary holds lifetime totals. It is only produced for a non-empty history.
type Summary struct {
	TotalWorkouts   int     `json:"totalWorkouts"`
	TotalDuration   int64   `json:"totalDuration"`
	TotalVolume     float64 `json:"totalVolume"`
	TotalSets       int     `json:"totalSets"`
	TotalReps       int     `json:"totalReps"`
	AverageDuration int64   `json:"avgDuration"`
	AverageVolume   int64   `json:"avgVolume"`
}

// DayBucket aggregates the workouts completed on one calendar day.
type DayBucket struct {
	Date        time.Time `json:"date"`
	Label       string    `json:"label"`
	ShortLabel  string    `json:"shortLabel"`
	DurationMin int64     `json:"duration"`
	Volume      float64   `json:"volume"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
	Workouts    int       `json:"workouts"`
}

// ExerciseStat is the lifetime load of one exercise name.
type ExerciseStat struct {
	Name        string  `json:"name"`
	TotalVolume float64 `json:"totalVolume"`
	MaxWeight   float64 `json:"maxWeight"`
	TotalSets   int     `json:"totalSets"`
}

// Report bundles everything the statistics view shows.
type Report struct {
	Summary      *Summary       `json:"summary"`
	Streak       int            `json:"streak"`
	Daily        []DayBucket    `json:"daily"`
	TopExercises []ExerciseStat `json:"topExercises"`
}

// Compute builds the default report: summary, streak, 30-day rollup and top 5 exercises.
func Compute(logs []models.WorkoutLog, now time.Time) Report {
	return Report{
		Summary:      Summarize(logs),
		Streak:       Streak(logs, now),
		Daily:        DailyRollup(logs, now, DefaultWindowDays),
		TopExercises: TopExercises(logs, DefaultTopExercises),
	}
}

// Summarize returns lifetime totals and per-workout averages, or nil when
// there are no logs.
func Summarize(logs []models.WorkoutLog) *Summary {
	if len(logs) == 0 {
		return nil
	}
	s := &Summary{TotalWorkouts: len(logs)}
	for _, l := range logs {
		s.TotalDuration += l.Duration
		s.TotalVolume += l.TotalVolume
		s.TotalSets += l.TotalSets
		s.TotalReps += l.TotalReps
	}
	n := float64(len(logs))
	s.AverageDuration = int64(math.Round(float64(s.TotalDuration) / n))
	s.AverageVolume = int64(math.Round(s.TotalVolume / n))
	return s
}

// Streak counts consecutive calendar days with at least one workout, ending
// today or yesterday. Days are compared by calendar arithmetic, so a 23- or
// 25-hour DST day still counts as one day.
func Streak(logs []models.WorkoutLog, now time.Time) int {
	days := distinctDays(logs, now.Location())
	if len(days) == 0 {
		return 0
	}

	today := startOfDay(now)
	yesterday := dayBefore(today)
	if !days[0].Equal(today) && !days[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(dayBefore(days[i-1])) {
			break
		}
		streak++
	}
	return streak
}

// DailyRollup returns exactly windowDays buckets, oldest first, ending with
// today. Days without workouts are zero-filled.
func DailyRollup(logs []models.WorkoutLog, now time.Time, windowDays int) []DayBucket {
	if windowDays <= 0 {
		return []DayBucket{}
	}

	today := startOfDay(now)
	buckets := make([]DayBucket, windowDays)
	index := make(map[string]int, windowDays)
	for i := range buckets {
		day := time.Date(today.Year(), today.Month(), today.Day()-(windowDays-1-i), 0, 0, 0, 0, today.Location())
		buckets[i] = DayBucket{
			Date:       day,
			Label:      day.Format("Jan 2"),
			ShortLabel: day.Format("2"),
		}
		index[dayKey(day)] = i
	}

	for _, l := range logs {
		i, ok := index[dayKey(startOfDay(l.CompletedAt.In(today.Location())))]
		if !ok {
			continue
		}
		b := &buckets[i]
		b.DurationMin += int64(math.Round(float64(l.Duration) / 60))
		b.Volume += l.TotalVolume
		b.Sets += l.TotalSets
		b.Reps += l.TotalReps
		b.Workouts++
	}
	return buckets
}

// TopExercises ranks exercises by completed volume, grouped by display name,
// and returns at most n. Ties keep first-seen order.
func TopExercises(logs []models.WorkoutLog, n int) []ExerciseStat {
	if n <= 0 {
		return []ExerciseStat{}
	}

	var order []string
	byName := make(map[string]*ExerciseStat)
	for _, l := range logs {
		for _, ex := range l.Exercises {
			st, ok := byName[ex.ExerciseName]
			if !ok {
				st = &ExerciseStat{Name: ex.ExerciseName}
				byName[ex.ExerciseName] = st
				order = append(order, ex.ExerciseName)
			}
			for _, s := range ex.Sets {
				if !s.Completed {
					continue
				}
				st.TotalVolume += s.Volume()
				st.MaxWeight = math.Max(st.MaxWeight, s.Weight)
				st.TotalSets++
			}
		}
	}

	out := make([]ExerciseStat, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalVolume > out[j].TotalVolume
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// FormatDuration renders seconds as "1h 5m" or "42m".
func FormatDuration(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// distinctDays returns the local calendar days of all completions, newest first.
func distinctDays(logs []models.WorkoutLog, loc *time.Location) []time.Time {
	seen := make(map[string]struct{}, len(logs))
	var days []time.Time
	for _, l := range logs {
		day := startOfDay(l.CompletedAt.In(loc))
		key := dayKey(day)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayBefore(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()-1, 0, 0, 0, 0, day.Location())
}

func dayKey(day time.Time) string {
	return day.Format("2006-01-02")
}
