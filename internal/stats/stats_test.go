package stats

import (
	"testing"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func logAt(completed time.Time, duration int64, volume float64, sets, reps int) models.WorkoutLog {
	return models.WorkoutLog{
		ID:          completed.Format(time.RFC3339Nano),
		RoutineName: "Push",
		StartedAt:   completed.Add(-time.Duration(duration) * time.Second),
		CompletedAt: completed,
		Duration:    duration,
		TotalVolume: volume,
		TotalSets:   sets,
		TotalReps:   reps,
	}
}

func exercise(name string, sets ...models.ExerciseSet) models.WorkoutExercise {
	return models.WorkoutExercise{ID: name, ExerciseID: name, ExerciseName: name, Sets: sets}
}

func done(weight float64, reps int) models.ExerciseSet {
	return models.ExerciseSet{Weight: weight, Reps: reps, Completed: true}
}

// TestSummarizeEmpty verifies an empty history has no summary.
func TestSummarizeEmpty(t *testing.T) {
	assert.Nil(t, Summarize(nil))
	assert.Nil(t, Summarize([]models.WorkoutLog{}))
}

// TestSummarizeTotalsAndAverages verifies sums and rounded averages.
func TestSummarizeTotalsAndAverages(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	logs := []models.WorkoutLog{
		logAt(now, 3000, 1000, 10, 50),
		logAt(now.Add(-24*time.Hour), 3601, 1501, 12, 60),
	}

	s := Summarize(logs)
	require.NotNil(t, s)
	assert.Equal(t, 2, s.TotalWorkouts)
	assert.Equal(t, int64(6601), s.TotalDuration)
	assert.Equal(t, 2501.0, s.TotalVolume)
	assert.Equal(t, 22, s.TotalSets)
	assert.Equal(t, 110, s.TotalReps)
	assert.Equal(t, int64(3301), s.AverageDuration)
	assert.Equal(t, int64(1251), s.AverageVolume)
}

// TestStreak covers the today/yesterday anchor and consecutive-day counting.
func TestStreak(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 6, 10, 9, 0, 0, 0, loc)
	day := func(offset int, hour int) time.Time {
		return time.Date(2026, 6, 10+offset, hour, 0, 0, 0, loc)
	}

	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{"empty", nil, 0},
		{"today only", []time.Time{day(0, 7)}, 1},
		{"yesterday only", []time.Time{day(-1, 20)}, 1},
		{"two days ago only", []time.Time{day(-2, 12)}, 0},
		{"today and yesterday", []time.Time{day(0, 7), day(-1, 20)}, 2},
		{"duplicates on one day", []time.Time{day(0, 7), day(0, 8), day(-1, 20)}, 2},
		{"gap breaks run", []time.Time{day(0, 7), day(-1, 20), day(-3, 10), day(-4, 10)}, 2},
		{"unordered input", []time.Time{day(-2, 10), day(0, 7), day(-1, 20)}, 3},
		{"run anchored on yesterday", []time.Time{day(-1, 10), day(-2, 10), day(-3, 10)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs []models.WorkoutLog
			for _, d := range tt.days {
				logs = append(logs, logAt(d, 600, 0, 0, 0))
			}
			assert.Equal(t, tt.want, Streak(logs, now))
		})
	}
}

// TestStreakAcrossDST verifies a 23-hour day still links consecutive days.
func TestStreakAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// Clocks spring forward on 2026-03-08.
	logs := []models.WorkoutLog{
		logAt(time.Date(2026, 3, 7, 0, 30, 0, 0, loc), 600, 0, 0, 0),
		logAt(time.Date(2026, 3, 8, 23, 30, 0, 0, loc), 600, 0, 0, 0),
		logAt(time.Date(2026, 3, 9, 6, 0, 0, 0, loc), 600, 0, 0, 0),
	}
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, loc)
	assert.Equal(t, 3, Streak(logs, now))
}

// TestStreakUsesCallerLocation verifies UTC timestamps are bucketed into the
// caller's local days.
func TestStreakUsesCallerLocation(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	// 03:00 UTC on June 10 is still June 9 in UTC-8.
	logs := []models.WorkoutLog{logAt(time.Date(2026, 6, 10, 3, 0, 0, 0, time.UTC), 600, 0, 0, 0)}
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, loc)
	assert.Equal(t, 1, Streak(logs, now))

	now = time.Date(2026, 6, 11, 12, 0, 0, 0, loc)
	assert.Equal(t, 0, Streak(logs, now))
}

// TestDailyRollupWindow verifies a dense, oldest-first window ending today.
func TestDailyRollupWindow(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)

	buckets := DailyRollup(nil, now, DefaultWindowDays)
	require.Len(t, buckets, 30)
	assert.Equal(t, "May 12", buckets[0].Label)
	assert.Equal(t, "12", buckets[0].ShortLabel)
	assert.Equal(t, "Jun 10", buckets[29].Label)
	assert.Equal(t, "10", buckets[29].ShortLabel)
	for i := 1; i < len(buckets); i++ {
		assert.True(t, buckets[i].Date.After(buckets[i-1].Date))
	}
	for _, b := range buckets {
		assert.Zero(t, b.Workouts)
	}

	assert.Empty(t, DailyRollup(nil, now, 0))
}

// TestDailyRollupAggregates verifies per-day sums, minute rounding and that
// logs outside the window are ignored.
func TestDailyRollupAggregates(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
	logs := []models.WorkoutLog{
		logAt(time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC), 89, 100, 2, 10),
		logAt(time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC), 150, 50, 1, 5),
		logAt(time.Date(2026, 6, 9, 8, 0, 0, 0, time.UTC), 3600, 500, 5, 25),
		logAt(time.Date(2026, 5, 11, 8, 0, 0, 0, time.UTC), 3600, 9999, 9, 99),
	}

	buckets := DailyRollup(logs, now, 30)
	require.Len(t, buckets, 30)

	today := buckets[29]
	assert.Equal(t, 2, today.Workouts)
	assert.Equal(t, int64(1+3), today.DurationMin)
	assert.Equal(t, 150.0, today.Volume)
	assert.Equal(t, 3, today.Sets)
	assert.Equal(t, 15, today.Reps)

	yesterday := buckets[28]
	assert.Equal(t, 1, yesterday.Workouts)
	assert.Equal(t, int64(60), yesterday.DurationMin)

	var total int
	for _, b := range buckets {
		total += b.Workouts
	}
	assert.Equal(t, 3, total)
}

// TestTopExercises verifies grouping by name, completed-only accounting,
// descending volume order and the cap.
func TestTopExercises(t *testing.T) {
	logs := []models.WorkoutLog{
		{Exercises: []models.WorkoutExercise{
			exercise("Bench Press", done(60, 5), done(60, 5)),
			exercise("Squat", done(100, 5), models.ExerciseSet{Weight: 200, Reps: 5}),
		}},
		{Exercises: []models.WorkoutExercise{
			exercise("Squat", done(110, 3)),
			exercise("Curl", done(10, 10)),
		}},
	}

	top := TopExercises(logs, 5)
	require.Len(t, top, 3)
	assert.Equal(t, ExerciseStat{Name: "Squat", TotalVolume: 830, MaxWeight: 110, TotalSets: 2}, top[0])
	assert.Equal(t, ExerciseStat{Name: "Bench Press", TotalVolume: 600, MaxWeight: 60, TotalSets: 2}, top[1])
	assert.Equal(t, "Curl", top[2].Name)

	assert.Len(t, TopExercises(logs, 2), 2)
	assert.Empty(t, TopExercises(logs, 0))
	assert.Empty(t, TopExercises(nil, 5))
}

// TestTopExercisesTiesKeepFirstSeenOrder verifies the sort is stable.
func TestTopExercisesTiesKeepFirstSeenOrder(t *testing.T) {
	logs := []models.WorkoutLog{{Exercises: []models.WorkoutExercise{
		exercise("B", done(10, 10)),
		exercise("A", done(10, 10)),
		exercise("C", done(10, 10)),
	}}}
	top := TopExercises(logs, 3)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{top[0].Name, top[1].Name, top[2].Name})
}

// TestCompute verifies the default report wiring.
func TestCompute(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
	r := Compute(nil, now)
	assert.Nil(t, r.Summary)
	assert.Zero(t, r.Streak)
	assert.Len(t, r.Daily, DefaultWindowDays)
	assert.Empty(t, r.TopExercises)

	r = Compute([]models.WorkoutLog{logAt(now, 60, 10, 1, 1)}, now)
	require.NotNil(t, r.Summary)
	assert.Equal(t, 1, r.Streak)
}

// TestFormatDuration covers the hour and minute-only renderings.
func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0m", FormatDuration(0))
	assert.Equal(t, "42m", FormatDuration(42*60+59))
	assert.Equal(t, "1h 5m", FormatDuration(3900))
	assert.Equal(t, "2h 0m", FormatDuration(7200))
}

// TestRollupProperties checks window length and conservation of workouts that
// fall inside the window.
func TestRollupProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
		window := rapid.IntRange(1, 60).Draw(t, "window")
		n := rapid.IntRange(0, 30).Draw(t, "logs")

		var logs []models.WorkoutLog
		inside := 0
		for i := 0; i < n; i++ {
			ago := rapid.IntRange(0, 90).Draw(t, "daysAgo")
			if ago < window {
				inside++
			}
			completed := time.Date(2026, 6, 10-ago, rapid.IntRange(0, 23).Draw(t, "hour"), 0, 0, 0, time.UTC)
			logs = append(logs, logAt(completed, 60, 1, 1, 1))
		}

		buckets := DailyRollup(logs, now, window)
		if len(buckets) != window {
			t.Fatalf("len = %d, want %d", len(buckets), window)
		}
		got := 0
		for _, b := range buckets {
			got += b.Workouts
		}
		if got != inside {
			t.Fatalf("bucketed %d workouts, want %d", got, inside)
		}

		streak := Streak(logs, now)
		if streak > n || streak < 0 {
			t.Fatalf("streak %d out of range for %d logs", streak, n)
		}
	})
}
