package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/trainlog/internal/models"
)

// datetimeLocalFormat is the wire format of <input type="datetime-local">.
const datetimeLocalFormat = "2006-01-02T15:04"

// Forms hold the raw submitted strings so a failed validation re-renders
// exactly what the user typed. validate() converts to a model, folding
// parse failures into the same FieldErrors as the model's own rules.

type exerciseTypeForm struct {
	Name string
}

func exerciseTypeFormFromRequest(r *http.Request) exerciseTypeForm {
	return exerciseTypeForm{Name: strings.TrimSpace(r.PostFormValue("name"))}
}

func (f exerciseTypeForm) validate() (*models.ExerciseType, models.FieldErrors) {
	et := models.ExerciseType{Name: f.Name}
	if errs := et.Validate(); errs != nil {
		return nil, errs
	}
	return &et, nil
}

type sessionForm struct {
	Start string
	End   string
}

func sessionFormFromRequest(r *http.Request) sessionForm {
	return sessionForm{
		Start: strings.TrimSpace(r.PostFormValue("start")),
		End:   strings.TrimSpace(r.PostFormValue("end")),
	}
}

func sessionFormFromModel(s *models.TrainingSession) sessionForm {
	return sessionForm{
		Start: s.Start.Format(datetimeLocalFormat),
		End:   s.End.Format(datetimeLocalFormat),
	}
}

func (f sessionForm) validate(ownerID int64) (*models.TrainingSession, models.FieldErrors) {
	errs := models.FieldErrors{}
	s := models.TrainingSession{OwnerID: ownerID}

	s.Start = parseDateTime(f.Start, "start", errs)
	s.End = parseDateTime(f.End, "end", errs)
	if len(errs) > 0 {
		return nil, errs
	}
	if verrs := s.Validate(); verrs != nil {
		return nil, verrs
	}
	return &s, nil
}

func parseDateTime(value, field string, errs models.FieldErrors) time.Time {
	if value == "" {
		errs[field] = "this field is required"
		return time.Time{}
	}
	t, err := time.Parse(datetimeLocalFormat, value)
	if err != nil {
		errs[field] = "enter a valid date and time"
		return time.Time{}
	}
	return t
}

type exerciseForm struct {
	SessionID      string
	ExerciseTypeID string
	Weight         string
	Sets           string
	Reps           string
}

func exerciseFormFromRequest(r *http.Request) exerciseForm {
	return exerciseForm{
		SessionID:      strings.TrimSpace(r.PostFormValue("training_session")),
		ExerciseTypeID: strings.TrimSpace(r.PostFormValue("exercise_type")),
		Weight:         strings.TrimSpace(r.PostFormValue("weight")),
		Sets:           strings.TrimSpace(r.PostFormValue("sets")),
		Reps:           strings.TrimSpace(r.PostFormValue("reps")),
	}
}

func exerciseFormFromModel(d *models.SessionExerciseDetail) exerciseForm {
	return exerciseForm{
		SessionID:      strconv.FormatInt(d.SessionID, 10),
		ExerciseTypeID: strconv.FormatInt(d.ExerciseTypeID, 10),
		Weight:         strconv.FormatFloat(d.Weight, 'f', -1, 64),
		Sets:           strconv.Itoa(d.Sets),
		Reps:           strconv.Itoa(d.Reps),
	}
}

func (f exerciseForm) validate(ownerID int64) (*models.SessionExercise, models.FieldErrors) {
	errs := models.FieldErrors{}
	e := models.SessionExercise{OwnerID: ownerID}

	e.SessionID = parseID(f.SessionID, "training_session", "choose a training session", errs)
	e.ExerciseTypeID = parseID(f.ExerciseTypeID, "exercise_type", "choose an exercise type", errs)

	if f.Weight == "" {
		errs["weight"] = "this field is required"
	} else if v, err := strconv.ParseFloat(f.Weight, 64); err != nil {
		errs["weight"] = "enter a number"
	} else {
		e.Weight = v
	}

	e.Sets = parseCount(f.Sets, "sets", errs)
	e.Reps = parseCount(f.Reps, "reps", errs)

	if len(errs) > 0 {
		return nil, errs
	}
	if verrs := e.Validate(); verrs != nil {
		return nil, verrs
	}
	return &e, nil
}

func parseID(value, field, missingMsg string, errs models.FieldErrors) int64 {
	if value == "" {
		errs[field] = missingMsg
		return 0
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		errs[field] = missingMsg
		return 0
	}
	return id
}

func parseCount(value, field string, errs models.FieldErrors) int {
	if value == "" {
		errs[field] = "this field is required"
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		errs[field] = "enter a whole number"
		return 0
	}
	return n
}
