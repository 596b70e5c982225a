package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/trainlog/internal/models"
)

const sessionExerciseColumns = `
	se.id, se.session_id, se.exercise_type_id, se.owner_id,
	se.weight, se.sets, se.reps,
	et.name, ts.start_time, ts.end_time`

const sessionExerciseJoins = `
	FROM session_exercises se
	JOIN exercise_types et ON et.id = se.exercise_type_id
	JOIN training_sessions ts ON ts.id = se.session_id`

// ListSessionExercises returns all exercises logged by a user, joined with
// the type name and session times, most recent session first.
func (db *DB) ListSessionExercises(ctx context.Context, ownerID int64) ([]models.SessionExerciseDetail, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT`+sessionExerciseColumns+sessionExerciseJoins+`
		 WHERE se.owner_id = $1
		 ORDER BY ts.start_time DESC, se.id DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying session exercises: %w", err)
	}
	defer rows.Close()

	return scanSessionExerciseRows(rows)
}

// ListExercisesForSession returns the exercises logged under one session,
// scoped to the owner.
func (db *DB) ListExercisesForSession(ctx context.Context, sessionID, ownerID int64) ([]models.SessionExerciseDetail, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT`+sessionExerciseColumns+sessionExerciseJoins+`
		 WHERE se.session_id = $1 AND se.owner_id = $2
		 ORDER BY se.id`,
		sessionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises for session: %w", err)
	}
	defer rows.Close()

	return scanSessionExerciseRows(rows)
}

// GetSessionExercise retrieves one logged exercise scoped to its owner.
func (db *DB) GetSessionExercise(ctx context.Context, id, ownerID int64) (*models.SessionExerciseDetail, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT`+sessionExerciseColumns+sessionExerciseJoins+`
		 WHERE se.id = $1 AND se.owner_id = $2`,
		id, ownerID)

	var d models.SessionExerciseDetail
	err := row.Scan(&d.ID, &d.SessionID, &d.ExerciseTypeID, &d.OwnerID,
		&d.Weight, &d.Sets, &d.Reps,
		&d.ExerciseName, &d.SessionStart, &d.SessionEnd)
	if err != nil {
		return nil, scanErr(err, "querying session exercise")
	}
	return &d, nil
}

// CreateSessionExercise inserts a logged exercise and returns its ID. The
// parent session's ownership is verified inside the same transaction as the
// insert: if the session does not exist or belongs to another user, the call
// fails with ErrNotFound and nothing is written.
func (db *DB) CreateSessionExercise(ctx context.Context, e models.SessionExercise) (int64, error) {
	var id int64
	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		if err := verifySessionOwner(ctx, tx, e.SessionID, e.OwnerID); err != nil {
			return err
		}
		return tx.QueryRow(ctx,
			`INSERT INTO session_exercises (session_id, exercise_type_id, owner_id, weight, sets, reps)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			e.SessionID, e.ExerciseTypeID, e.OwnerID, e.Weight, e.Sets, e.Reps).Scan(&id)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("creating session exercise: %w", err)
	}
	return id, nil
}

// UpdateSessionExercise rewrites a logged exercise, scoped to its owner.
// Like create, the (possibly changed) parent session's ownership is checked
// transactionally.
func (db *DB) UpdateSessionExercise(ctx context.Context, e models.SessionExercise) error {
	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		if err := verifySessionOwner(ctx, tx, e.SessionID, e.OwnerID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			`UPDATE session_exercises
			 SET session_id = $3, exercise_type_id = $4, weight = $5, sets = $6, reps = $7
			 WHERE id = $1 AND owner_id = $2`,
			e.ID, e.OwnerID, e.SessionID, e.ExerciseTypeID, e.Weight, e.Sets, e.Reps)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("updating session exercise: %w", err)
	}
	return nil
}

// DeleteSessionExercise removes a logged exercise scoped to its owner.
func (db *DB) DeleteSessionExercise(ctx context.Context, id, ownerID int64) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM session_exercises WHERE id = $1 AND owner_id = $2`,
		id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting session exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// verifySessionOwner confirms the session exists and is owned by ownerID.
func verifySessionOwner(ctx context.Context, tx pgx.Tx, sessionID, ownerID int64) error {
	var one int
	err := tx.QueryRow(ctx,
		`SELECT 1 FROM training_sessions WHERE id = $1 AND owner_id = $2`,
		sessionID, ownerID).Scan(&one)
	if err != nil {
		return scanErr(err, "verifying session owner")
	}
	return nil
}

func scanSessionExerciseRows(rows pgx.Rows) ([]models.SessionExerciseDetail, error) {
	var result []models.SessionExerciseDetail
	for rows.Next() {
		var d models.SessionExerciseDetail
		if err := rows.Scan(&d.ID, &d.SessionID, &d.ExerciseTypeID, &d.OwnerID,
			&d.Weight, &d.Sets, &d.Reps,
			&d.ExerciseName, &d.SessionStart, &d.SessionEnd); err != nil {
			return nil, fmt.Errorf("scanning session exercise: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
