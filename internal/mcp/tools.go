package mcp

import (
	"context"
	"time"

	"github.com/claude/ironlog/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexEnd(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// parseFlexEnd parses an end bound. A bare date covers that whole day, as it
// does on the HTTP API.
func parseFlexEnd(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(24 * time.Hour), nil
}

// clampInt bounds v to [1, upper].
func clampInt(v, upper int) int {
	return max(1, min(v, upper))
}

// --- Tool definitions ---

var toolGetSummary = mcp.NewTool("get_summary",
	mcp.WithDescription("Lifetime training totals (workouts, duration, volume, sets, reps), per-workout averages and the current streak of consecutive training days."),
)

var toolGetDailyRollup = mcp.NewTool("get_daily_rollup",
	mcp.WithDescription("Per-day activity for the last N calendar days, oldest first, one entry per day including rest days. Duration is in minutes."),
	mcp.WithNumber("days", mcp.Description("Number of days ending today. Defaults to 30."), mcp.Min(1), mcp.Max(366)),
)

var toolGetTopExercises = mcp.NewTool("get_top_exercises",
	mcp.WithDescription("Exercises ranked by total completed volume (weight x reps), with heaviest completed weight and completed set count."),
	mcp.WithNumber("limit", mcp.Description("Maximum exercises to return. Defaults to 5."), mcp.Min(1), mcp.Max(100)),
)

var toolListWorkoutLogs = mcp.NewTool("list_workout_logs",
	mcp.WithDescription("Finished workouts with every exercise and set, newest first."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolListRoutines = mcp.NewTool("list_routines",
	mcp.WithDescription("All workout routines with their exercises, target set counts and default weight/reps."),
)

// --- Tool handlers ---

func (h *handlers) getSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.ds.GetStats(ctx)
	if err != nil {
		h.log.Error("mcp get_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	out := map[string]any{
		"summary": report.Summary,
		"streak":  report.Streak,
	}
	if report.Summary != nil {
		out["total_duration"] = stats.FormatDuration(report.Summary.TotalDuration)
		out["avg_duration"] = stats.FormatDuration(report.Summary.AverageDuration)
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDailyRollup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := clampInt(req.GetInt("days", stats.DefaultWindowDays), 366)

	buckets, err := h.ds.GetDailyRollup(ctx, days)
	if err != nil {
		h.log.Error("mcp get_daily_rollup", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(buckets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTopExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := clampInt(req.GetInt("limit", stats.DefaultTopExercises), 100)

	top, err := h.ds.GetTopExercises(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_top_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(top)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listWorkoutLogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	logs, err := h.ds.ListLogs(ctx, start, end)
	if err != nil {
		h.log.Error("mcp list_workout_logs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(logs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listRoutines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routines, err := h.ds.ListRoutines(ctx)
	if err != nil {
		h.log.Error("mcp list_routines", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(routines)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
