package models

import (
	"sort"
	"strings"
	"time"
)

// Validation bounds for the three entity types.
const (
	NameMinLen = 3
	NameMaxLen = 100
	WeightMin  = 0
	WeightMax  = 1000
	SetsMin    = 1
	SetsMax    = 100
	RepsMin    = 1
	RepsMax    = 100
)

// FieldErrors maps a form field name to a validation message.
// It implements error so callers can return it from validation paths.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(e[f])
	}
	return b.String()
}

// User is an account that owns training sessions and logged exercises.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// ExerciseType is a catalog entry shared by all users. Only administrators
// manage the catalog; anyone may browse it.
type ExerciseType struct {
	ID   int64
	Name string
}

// Validate checks the catalog-entry invariants. Returns nil when valid.
func (t *ExerciseType) Validate() FieldErrors {
	errs := FieldErrors{}
	name := strings.TrimSpace(t.Name)
	switch {
	case name == "":
		errs["name"] = "name is required"
	case len(name) < NameMinLen:
		errs["name"] = "name must be at least 3 characters"
	case len(name) > NameMaxLen:
		errs["name"] = "name must be at most 100 characters"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// TrainingSession is one visit to the gym, bounded by start and end times.
// It belongs to exactly one user.
type TrainingSession struct {
	ID      int64
	OwnerID int64
	Start   time.Time
	End     time.Time
}

// Validate checks the session invariants. The end must be strictly after
// the start; an instantaneous session is rejected.
func (s *TrainingSession) Validate() FieldErrors {
	errs := FieldErrors{}
	if s.Start.IsZero() {
		errs["start"] = "start time is required"
	}
	if s.End.IsZero() {
		errs["end"] = "end time is required"
	}
	if len(errs) == 0 && !s.End.After(s.Start) {
		errs["end"] = "end time must be after the start time"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// SessionExercise is one exercise performed within a training session:
// a weight moved for a number of sets of a number of reps. OwnerID is a
// denormalized copy of the parent session's owner and must always match it.
type SessionExercise struct {
	ID             int64
	SessionID      int64
	ExerciseTypeID int64
	OwnerID        int64
	Weight         float64
	Sets           int
	Reps           int
}

// Validate checks the declared numeric bounds and required references.
func (e *SessionExercise) Validate() FieldErrors {
	errs := FieldErrors{}
	if e.SessionID == 0 {
		errs["training_session"] = "training session is required"
	}
	if e.ExerciseTypeID == 0 {
		errs["exercise_type"] = "exercise type is required"
	}
	if e.Weight < WeightMin || e.Weight > WeightMax {
		errs["weight"] = "weight must be between 0 and 1000"
	}
	if e.Sets < SetsMin || e.Sets > SetsMax {
		errs["sets"] = "sets must be between 1 and 100"
	}
	if e.Reps < RepsMin || e.Reps > RepsMax {
		errs["reps"] = "reps must be between 1 and 100"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Volume is weight x sets x reps, the conventional tonnage measure.
func (e *SessionExercise) Volume() float64 {
	return e.Weight * float64(e.Sets) * float64(e.Reps)
}

// SessionExerciseDetail is a SessionExercise joined with the exercise-type
// name and the parent session's times, so list and stats consumers need no
// follow-up lookups.
type SessionExerciseDetail struct {
	SessionExercise
	ExerciseName string
	SessionStart time.Time
	SessionEnd   time.Time
}
