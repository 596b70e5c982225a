package storage

import (
	"context"
	"fmt"

	"github.com/meltforce/trainlog/internal/models"
)

// ListTrainingSessions returns all sessions owned by a user, most recent
// start first.
func (db *DB) ListTrainingSessions(ctx context.Context, ownerID int64) ([]models.TrainingSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, owner_id, start_time, end_time
		 FROM training_sessions
		 WHERE owner_id = $1
		 ORDER BY start_time DESC, id DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying training sessions: %w", err)
	}
	defer rows.Close()

	var result []models.TrainingSession
	for rows.Next() {
		var s models.TrainingSession
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Start, &s.End); err != nil {
			return nil, fmt.Errorf("scanning training session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetTrainingSession retrieves one session scoped to its owner. A session
// owned by someone else is reported as ErrNotFound.
func (db *DB) GetTrainingSession(ctx context.Context, id, ownerID int64) (*models.TrainingSession, error) {
	var s models.TrainingSession
	err := db.Pool.QueryRow(ctx,
		`SELECT id, owner_id, start_time, end_time
		 FROM training_sessions
		 WHERE id = $1 AND owner_id = $2`,
		id, ownerID).Scan(&s.ID, &s.OwnerID, &s.Start, &s.End)
	if err != nil {
		return nil, scanErr(err, "querying training session")
	}
	return &s, nil
}

// CreateTrainingSession inserts a session and returns its ID. The caller is
// responsible for setting OwnerID from the acting identity.
func (db *DB) CreateTrainingSession(ctx context.Context, s models.TrainingSession) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO training_sessions (owner_id, start_time, end_time)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		s.OwnerID, s.Start, s.End).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating training session: %w", err)
	}
	return id, nil
}

// UpdateTrainingSession rewrites a session's times, scoped to its owner.
func (db *DB) UpdateTrainingSession(ctx context.Context, s models.TrainingSession) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE training_sessions
		 SET start_time = $3, end_time = $4
		 WHERE id = $1 AND owner_id = $2`,
		s.ID, s.OwnerID, s.Start, s.End)
	if err != nil {
		return fmt.Errorf("updating training session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTrainingSession removes a session scoped to its owner. Its logged
// exercises are removed by the ON DELETE CASCADE foreign key.
func (db *DB) DeleteTrainingSession(ctx context.Context, id, ownerID int64) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM training_sessions WHERE id = $1 AND owner_id = $2`,
		id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting training session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
