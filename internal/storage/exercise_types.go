package storage

import (
	"context"
	"fmt"

	"github.com/meltforce/trainlog/internal/models"
)

// ListExerciseTypes returns the whole catalog, ordered alphabetically.
func (db *DB) ListExerciseTypes(ctx context.Context) ([]models.ExerciseType, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name FROM exercise_types ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("querying exercise types: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseType
	for rows.Next() {
		var t models.ExerciseType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning exercise type: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// GetExerciseType retrieves a single catalog entry. Catalog entries are
// global, so there is no owner filter.
func (db *DB) GetExerciseType(ctx context.Context, id int64) (*models.ExerciseType, error) {
	var t models.ExerciseType
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name FROM exercise_types WHERE id = $1`,
		id).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, scanErr(err, "querying exercise type")
	}
	return &t, nil
}

// CreateExerciseType inserts a catalog entry and returns its ID.
func (db *DB) CreateExerciseType(ctx context.Context, name string) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercise_types (name) VALUES ($1) RETURNING id`,
		name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating exercise type: %w", err)
	}
	return id, nil
}

// UpdateExerciseType renames a catalog entry.
func (db *DB) UpdateExerciseType(ctx context.Context, id int64, name string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE exercise_types SET name = $2 WHERE id = $1`,
		id, name)
	if err != nil {
		return fmt.Errorf("updating exercise type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExerciseType removes a catalog entry. Session exercises that
// reference it are removed by the ON DELETE CASCADE foreign key.
func (db *DB) DeleteExerciseType(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM exercise_types WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("deleting exercise type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetOrCreateExerciseType finds a catalog entry by exact name, inserting it
// when absent. Used by the bulk importer; name uniqueness is not enforced at
// the schema level, so the lookup picks the lowest ID on duplicates.
func (db *DB) GetOrCreateExerciseType(ctx context.Context, name string) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`SELECT id FROM exercise_types WHERE name = $1 ORDER BY id LIMIT 1`,
		name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err := scanErr(err, "querying exercise type by name"); err != ErrNotFound {
		return 0, err
	}
	return db.CreateExerciseType(ctx, name)
}
