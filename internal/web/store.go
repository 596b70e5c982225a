package web

import (
	"context"
	"time"

	"github.com/meltforce/trainlog/internal/models"
	"github.com/meltforce/trainlog/internal/storage"
)

// Store abstracts the persistence layer for HTTP handlers. *storage.DB is
// the production implementation; tests substitute an in-memory fake.
//
// Every owner-scoped method treats "absent" and "owned by someone else" the
// same way: storage.ErrNotFound.
type Store interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	ListExerciseTypes(ctx context.Context) ([]models.ExerciseType, error)
	GetExerciseType(ctx context.Context, id int64) (*models.ExerciseType, error)
	CreateExerciseType(ctx context.Context, name string) (int64, error)
	UpdateExerciseType(ctx context.Context, id int64, name string) error
	DeleteExerciseType(ctx context.Context, id int64) error

	ListTrainingSessions(ctx context.Context, ownerID int64) ([]models.TrainingSession, error)
	GetTrainingSession(ctx context.Context, id, ownerID int64) (*models.TrainingSession, error)
	CreateTrainingSession(ctx context.Context, s models.TrainingSession) (int64, error)
	UpdateTrainingSession(ctx context.Context, s models.TrainingSession) error
	DeleteTrainingSession(ctx context.Context, id, ownerID int64) error

	ListSessionExercises(ctx context.Context, ownerID int64) ([]models.SessionExerciseDetail, error)
	ListExercisesForSession(ctx context.Context, sessionID, ownerID int64) ([]models.SessionExerciseDetail, error)
	GetSessionExercise(ctx context.Context, id, ownerID int64) (*models.SessionExerciseDetail, error)
	CreateSessionExercise(ctx context.Context, e models.SessionExercise) (int64, error)
	UpdateSessionExercise(ctx context.Context, e models.SessionExercise) error
	DeleteSessionExercise(ctx context.Context, id, ownerID int64) error

	GetTrainingStats(ctx context.Context, ownerID int64, since time.Time) (*storage.TrainingStats, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)
