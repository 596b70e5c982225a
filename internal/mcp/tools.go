package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/trainlog/internal/models"
)

// defaultTimeRange returns start/end defaulting to the last 28 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
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
		start = end.AddDate(0, 0, -28)
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

// --- Tool definitions ---

var toolListExerciseTypes = mcp.NewTool("list_exercise_types",
	mcp.WithDescription("List the exercise-type catalog (e.g. Bench press, Squat), ordered by name."),
)

var toolGetTrainingSessions = mcp.NewTool("get_training_sessions",
	mcp.WithDescription("Query the user's training sessions. Returns start and end times, most recent first."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 28 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetSessionExercises = mcp.NewTool("get_session_exercises",
	mcp.WithDescription("Query the user's logged exercises with weight, sets, and reps. Each entry names its exercise type and the session it belongs to."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 28 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match, e.g. 'bench')")),
)

var toolGetTrainingStats = mcp.NewTool("get_training_stats",
	mcp.WithDescription("Aggregate training statistics per exercise type: entry count, total sets, and total volume (weight x sets x reps)."),
	mcp.WithString("since", mcp.Description("Start date of the window. Defaults to 28 days ago.")),
)

// --- Tool handlers ---

func (h *handlers) listExerciseTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types, err := h.ds.ListExerciseTypes(ctx)
	if err != nil {
		h.log.Error("mcp list_exercise_types", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(types)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	sessions, err := h.ds.ListTrainingSessions(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_training_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	filtered := sessions[:0]
	for _, s := range sessions {
		if s.Start.Before(start) || s.Start.After(end) {
			continue
		}
		filtered = append(filtered, s)
	}

	result, err := mcp.NewToolResultJSON(filtered)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	nameFilter := strings.ToLower(req.GetString("exercise", ""))

	uid := UserIDFromContext(ctx)
	exercises, err := h.ds.ListSessionExercises(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_session_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	filtered := make([]models.SessionExerciseDetail, 0, len(exercises))
	for _, e := range exercises {
		if e.SessionStart.Before(start) || e.SessionStart.After(end) {
			continue
		}
		if nameFilter != "" && !strings.Contains(strings.ToLower(e.ExerciseName), nameFilter) {
			continue
		}
		filtered = append(filtered, e)
	}

	result, err := mcp.NewToolResultJSON(filtered)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	since := time.Now().AddDate(0, 0, -28)
	if s := req.GetString("since", ""); s != "" {
		t, err := parseFlexTime(s)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
		since = t
	}

	uid := UserIDFromContext(ctx)
	stats, err := h.ds.GetTrainingStats(ctx, uid, since)
	if err != nil {
		h.log.Error("mcp get_training_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
