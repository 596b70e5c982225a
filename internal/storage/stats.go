package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/meltforce/trainlog/internal/models"
)

// ExerciseTypeTotal is an additive aggregate over one exercise type within
// the stats window: how many entries were logged and the summed tonnage.
type ExerciseTypeTotal struct {
	Name        string
	Entries     int
	TotalSets   int
	TotalVolume float64
}

// TrainingStats is the stats view payload: the raw rows in the trailing
// window (the original contract) plus per-type totals layered on top.
type TrainingStats struct {
	Since  time.Time
	Rows   []models.SessionExerciseDetail
	Totals []ExerciseTypeTotal
}

// GetTrainingStats returns every exercise the user logged under a session
// that started at or after `since`, with exercise type and session identity
// attached, plus per-type volume totals over the same rows.
func (db *DB) GetTrainingStats(ctx context.Context, ownerID int64, since time.Time) (*TrainingStats, error) {
	stats := &TrainingStats{Since: since}

	rows, err := db.Pool.Query(ctx,
		`SELECT`+sessionExerciseColumns+sessionExerciseJoins+`
		 WHERE se.owner_id = $1 AND ts.start_time >= $2
		 ORDER BY ts.start_time DESC, se.id DESC`,
		ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("querying stats rows: %w", err)
	}
	defer rows.Close()

	stats.Rows, err = scanSessionExerciseRows(rows)
	if err != nil {
		return nil, err
	}

	totalRows, err := db.Pool.Query(ctx,
		`SELECT et.name,
		        COUNT(*)::int,
		        COALESCE(SUM(se.sets), 0)::int,
		        COALESCE(SUM(se.weight * se.sets * se.reps), 0)
		 FROM session_exercises se
		 JOIN exercise_types et ON et.id = se.exercise_type_id
		 JOIN training_sessions ts ON ts.id = se.session_id
		 WHERE se.owner_id = $1 AND ts.start_time >= $2
		 GROUP BY et.name
		 ORDER BY SUM(se.weight * se.sets * se.reps) DESC, et.name`,
		ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("querying stats totals: %w", err)
	}
	defer totalRows.Close()

	for totalRows.Next() {
		var t ExerciseTypeTotal
		if err := totalRows.Scan(&t.Name, &t.Entries, &t.TotalSets, &t.TotalVolume); err != nil {
			return nil, fmt.Errorf("scanning stats total: %w", err)
		}
		stats.Totals = append(stats.Totals, t)
	}
	return stats, totalRows.Err()
}
