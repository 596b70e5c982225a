package mcp

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/trainlog/internal/models"
	"github.com/meltforce/trainlog/internal/storage"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestDefaultTimeRange verifies time range defaults (last 28 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty → defaults to last 28 days
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 27*24 || diff.Hours() > 29*24 {
		t.Errorf("default range = %.0f hours, want ~%d", diff.Hours(), 28*24)
	}

	// Explicit dates
	start, end, err = defaultTimeRange("2026-08-01", "2026-08-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2026 || start.Month() != 8 || start.Day() != 1 {
		t.Errorf("start = %v, want 2026-08-01", start)
	}
	if end.Day() != 28 {
		t.Errorf("end = %v, want 2026-08-28", end)
	}

	// RFC3339
	start, _, err = defaultTimeRange("2026-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	// Invalid
	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}

// fakeDataSource returns canned data for tool handler tests.
type fakeDataSource struct {
	exercises []models.SessionExerciseDetail

	gotOwnerID int64
	gotSince   time.Time
}

func (f *fakeDataSource) ListExerciseTypes(context.Context) ([]models.ExerciseType, error) {
	return []models.ExerciseType{{ID: 1, Name: "Bench press"}}, nil
}

func (f *fakeDataSource) ListTrainingSessions(_ context.Context, ownerID int64) ([]models.TrainingSession, error) {
	f.gotOwnerID = ownerID
	return nil, nil
}

func (f *fakeDataSource) ListSessionExercises(_ context.Context, ownerID int64) ([]models.SessionExerciseDetail, error) {
	f.gotOwnerID = ownerID
	return f.exercises, nil
}

func (f *fakeDataSource) GetTrainingStats(_ context.Context, ownerID int64, since time.Time) (*storage.TrainingStats, error) {
	f.gotOwnerID = ownerID
	f.gotSince = since
	return &storage.TrainingStats{Since: since}, nil
}

// TestGetSessionExercisesScopedToUser verifies the tool queries with the
// user ID from context and filters by exercise name.
func TestGetSessionExercisesScopedToUser(t *testing.T) {
	now := time.Now()
	ds := &fakeDataSource{exercises: []models.SessionExerciseDetail{
		{SessionExercise: models.SessionExercise{ID: 1}, ExerciseName: "Bench press", SessionStart: now},
		{SessionExercise: models.SessionExercise{ID: 2}, ExerciseName: "Squat", SessionStart: now},
	}}
	h := &handlers{ds: ds, log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"exercise": "bench"}

	result, err := h.getSessionExercises(WithUserID(context.Background(), 42), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned error result: %+v", result)
	}
	if ds.gotOwnerID != 42 {
		t.Errorf("owner queried = %d, want 42", ds.gotOwnerID)
	}
}

// TestGetTrainingStatsDefaultWindow verifies the stats tool defaults its
// window to the last 28 days.
func TestGetTrainingStatsDefaultWindow(t *testing.T) {
	ds := &fakeDataSource{}
	h := &handlers{ds: ds, log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	result, err := h.getTrainingStats(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned error result: %+v", result)
	}
	want := time.Now().AddDate(0, 0, -28)
	if d := ds.gotSince.Sub(want); d < -time.Minute || d > time.Minute {
		t.Errorf("since = %v, want about %v", ds.gotSince, want)
	}
	if ds.gotOwnerID != 1 {
		t.Errorf("owner queried = %d, want default 1", ds.gotOwnerID)
	}
}
