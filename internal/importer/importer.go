// Package importer loads training logs exported as CSV into the database.
// Each CSV row is one logged exercise; consecutive rows that share a start
// and end time belong to the same training session.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/trainlog/internal/models"
)

// timeLayout is the timestamp format expected in CSV exports.
const timeLayout = "2006-01-02 15:04"

// Store is the subset of the database the importer writes through.
type Store interface {
	GetOrCreateExerciseType(ctx context.Context, name string) (int64, error)
	CreateTrainingSession(ctx context.Context, s models.TrainingSession) (int64, error)
	CreateSessionExercise(ctx context.Context, e models.SessionExercise) (int64, error)
}

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	SessionsCreated  int
	ExercisesCreated int
	RowsRejected     int
}

// Importer reads CSV files from an export directory and inserts the
// sessions and exercises they describe, attributed to a single owner.
type Importer struct {
	db      Store
	state   *StateDB
	log     *slog.Logger
	ownerID int64
	dryRun  bool
	stats   Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// processed regardless of earlier runs.
func New(db Store, state *StateDB, log *slog.Logger, ownerID int64, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, ownerID: ownerID, dryRun: dryRun}
}

// Import processes all .csv files under dir.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &imp.stats, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := imp.importFile(ctx, name, path); err != nil {
			imp.stats.FilesErrored++
			imp.log.Error("import failed", "file", name, "error", err)
			continue
		}
	}
	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, name, path string) error {
	var (
		size int64
		hash string
	)
	if imp.state != nil {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		size = info.Size()
		hash, err = HashFile(path)
		if err != nil {
			return err
		}
		done, err := imp.state.IsImported(name, size, hash)
		if err != nil {
			return err
		}
		if done {
			imp.stats.FilesSkipped++
			imp.log.Debug("already imported", "file", name)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	groups, rejected, err := ParseLog(f)
	if err != nil {
		return err
	}
	imp.stats.RowsRejected += rejected

	exercises := 0
	for _, g := range groups {
		if err := imp.insertGroup(ctx, g); err != nil {
			return err
		}
		exercises += len(g.Rows)
	}

	// Marked only after every insert succeeded; a failed file is retried
	// on the next run.
	if imp.state != nil && !imp.dryRun {
		if err := imp.state.MarkImported(name, size, hash, imp.ownerID, len(groups), exercises); err != nil {
			imp.log.Error("marking imported", "file", name, "error", err)
		}
	}

	imp.stats.FilesProcessed++
	imp.log.Info("imported", "file", name, "sessions", len(groups))
	return nil
}

func (imp *Importer) insertGroup(ctx context.Context, g SessionGroup) error {
	imp.stats.SessionsCreated++
	imp.stats.ExercisesCreated += len(g.Rows)
	if imp.dryRun {
		return nil
	}

	sessionID, err := imp.db.CreateTrainingSession(ctx, models.TrainingSession{
		OwnerID: imp.ownerID,
		Start:   g.Start,
		End:     g.End,
	})
	if err != nil {
		return fmt.Errorf("creating session at %s: %w", g.Start.Format(timeLayout), err)
	}

	for _, row := range g.Rows {
		typeID, err := imp.db.GetOrCreateExerciseType(ctx, row.Exercise)
		if err != nil {
			return fmt.Errorf("resolving exercise type %q: %w", row.Exercise, err)
		}
		_, err = imp.db.CreateSessionExercise(ctx, models.SessionExercise{
			SessionID:      sessionID,
			ExerciseTypeID: typeID,
			OwnerID:        imp.ownerID,
			Weight:         row.Weight,
			Sets:           row.Sets,
			Reps:           row.Reps,
		})
		if err != nil {
			return fmt.Errorf("creating exercise %q: %w", row.Exercise, err)
		}
	}
	return nil
}

// Row is one parsed CSV line.
type Row struct {
	Exercise string
	Weight   float64
	Sets     int
	Reps     int
}

// SessionGroup is a run of rows sharing a start and end time.
type SessionGroup struct {
	Start time.Time
	End   time.Time
	Rows  []Row
}

// ParseLog reads a CSV training log. The expected header is
// start,end,exercise,weight,sets,reps. Rows that fail to parse or fail
// validation are counted and skipped rather than aborting the file.
func ParseLog(r io.Reader) ([]SessionGroup, int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != 6 || !strings.EqualFold(header[0], "start") {
		return nil, 0, fmt.Errorf("unexpected header %v", header)
	}

	var (
		groups   []SessionGroup
		rejected int
	)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rejected, fmt.Errorf("line %d: %w", line, err)
		}

		start, end, row, err := parseRecord(record)
		if err != nil {
			rejected++
			continue
		}

		n := len(groups)
		if n > 0 && groups[n-1].Start.Equal(start) && groups[n-1].End.Equal(end) {
			groups[n-1].Rows = append(groups[n-1].Rows, row)
			continue
		}
		groups = append(groups, SessionGroup{Start: start, End: end, Rows: []Row{row}})
	}
	return groups, rejected, nil
}

func parseRecord(record []string) (start, end time.Time, row Row, err error) {
	if len(record) != 6 {
		return start, end, row, fmt.Errorf("want 6 fields, got %d", len(record))
	}
	start, err = time.Parse(timeLayout, record[0])
	if err != nil {
		return start, end, row, err
	}
	end, err = time.Parse(timeLayout, record[1])
	if err != nil {
		return start, end, row, err
	}

	row.Exercise = strings.TrimSpace(record[2])
	if row.Weight, err = strconv.ParseFloat(record[3], 64); err != nil {
		return start, end, row, err
	}
	if row.Sets, err = strconv.Atoi(record[4]); err != nil {
		return start, end, row, err
	}
	if row.Reps, err = strconv.Atoi(record[5]); err != nil {
		return start, end, row, err
	}

	session := models.TrainingSession{OwnerID: 1, Start: start, End: end}
	if errs := session.Validate(); errs != nil {
		return start, end, row, errs
	}
	et := models.ExerciseType{Name: row.Exercise}
	if errs := et.Validate(); errs != nil {
		return start, end, row, errs
	}
	exercise := models.SessionExercise{
		SessionID: 1, ExerciseTypeID: 1, OwnerID: 1,
		Weight: row.Weight, Sets: row.Sets, Reps: row.Reps,
	}
	if errs := exercise.Validate(); errs != nil {
		return start, end, row, errs
	}
	return start, end, row, nil
}
