package mcp

import (
	"context"
	"time"

	"github.com/meltforce/trainlog/internal/models"
	"github.com/meltforce/trainlog/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. *storage.DB is the
// production implementation; tests use a fake.
type DataSource interface {
	ListExerciseTypes(ctx context.Context) ([]models.ExerciseType, error)
	ListTrainingSessions(ctx context.Context, ownerID int64) ([]models.TrainingSession, error)
	ListSessionExercises(ctx context.Context, ownerID int64) ([]models.SessionExerciseDetail, error)
	GetTrainingStats(ctx context.Context, ownerID int64, since time.Time) (*storage.TrainingStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
