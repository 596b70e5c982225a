package web

import (
	"errors"
	"net/http"

	"github.com/meltforce/trainlog/internal/models"
	"github.com/meltforce/trainlog/internal/storage"
)

func (s *Server) handleExerciseList(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	exercises, err := s.store.ListSessionExercises(r.Context(), sess.UserID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "exercise_list.html", page{
		Title: "Logged exercises",
		Data:  exercises,
	})
}

func (s *Server) handleExerciseDetail(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	exercise, err := s.store.GetSessionExercise(r.Context(), id, sess.UserID)
	if err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "exercise_detail.html", page{
		Title: "Logged exercise",
		Data:  exercise,
	})
}

// exerciseFormData carries the select-box options for the exercise form.
// Sessions are restricted to the acting user's own, so another user's
// session can never be a selectable target.
type exerciseFormData struct {
	Sessions []models.TrainingSession
	Types    []models.ExerciseType
}

func (s *Server) exerciseFormOptions(r *http.Request, ownerID int64) (exerciseFormData, error) {
	sessions, err := s.store.ListTrainingSessions(r.Context(), ownerID)
	if err != nil {
		return exerciseFormData{}, err
	}
	types, err := s.store.ListExerciseTypes(r.Context())
	if err != nil {
		return exerciseFormData{}, err
	}
	return exerciseFormData{Sessions: sessions, Types: types}, nil
}

func (s *Server) handleExerciseCreateForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	options, err := s.exerciseFormOptions(r, sess.UserID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "exercise_form.html", page{
		Title: "Add exercise",
		Form:  exerciseForm{},
		Data:  options,
	})
}

func (s *Server) handleExerciseCreate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}

	form := exerciseFormFromRequest(r)
	rerender := func(errs models.FieldErrors) {
		options, err := s.exerciseFormOptions(r, sess.UserID)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, "exercise_form.html", page{
			Title:  "Add exercise",
			Form:   form,
			Errors: errs,
			Data:   options,
		})
	}

	exercise, errs := form.validate(sess.UserID)
	if errs != nil {
		rerender(errs)
		return
	}

	_, err := s.store.CreateSessionExercise(r.Context(), *exercise)
	if err != nil {
		// A session miss here means the submitted session does not exist
		// or belongs to someone else; either way it is not a valid choice.
		if errors.Is(err, storage.ErrNotFound) {
			rerender(models.FieldErrors{"training_session": "choose one of your training sessions"})
			return
		}
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/session-exercises/", http.StatusFound)
}

func (s *Server) handleExerciseEditForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	exercise, err := s.store.GetSessionExercise(r.Context(), id, sess.UserID)
	if err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	options, err := s.exerciseFormOptions(r, sess.UserID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "exercise_form.html", page{
		Title: "Edit exercise",
		Form:  exerciseFormFromModel(exercise),
		Data:  options,
	})
}

func (s *Server) handleExerciseEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Confirm the exercise itself exists and is owned before validating
	// input, so a miss is a 404 rather than a form error.
	if _, err := s.store.GetSessionExercise(r.Context(), id, sess.UserID); err != nil {
		s.lookupFailed(w, r, err)
		return
	}

	form := exerciseFormFromRequest(r)
	rerender := func(errs models.FieldErrors) {
		options, err := s.exerciseFormOptions(r, sess.UserID)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, "exercise_form.html", page{
			Title:  "Edit exercise",
			Form:   form,
			Errors: errs,
			Data:   options,
		})
	}

	exercise, errs := form.validate(sess.UserID)
	if errs != nil {
		rerender(errs)
		return
	}

	exercise.ID = id
	if err := s.store.UpdateSessionExercise(r.Context(), *exercise); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			rerender(models.FieldErrors{"training_session": "choose one of your training sessions"})
			return
		}
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/session-exercises/", http.StatusFound)
}

func (s *Server) handleExerciseDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	exercise, err := s.store.GetSessionExercise(r.Context(), id, sess.UserID)
	if err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "exercise_confirm_delete.html", page{
		Title: "Delete exercise",
		Data:  exercise,
	})
}

func (s *Server) handleExerciseDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := s.store.DeleteSessionExercise(r.Context(), id, sess.UserID); err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	http.Redirect(w, r, "/session-exercises/", http.StatusFound)
}
