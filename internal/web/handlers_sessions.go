package web

import (
	"net/http"

	"github.com/meltforce/trainlog/internal/models"
)

func (s *Server) handleSessionList(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	sessions, err := s.store.ListTrainingSessions(r.Context(), sess.UserID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "session_list.html", page{
		Title: "Training sessions",
		Data:  sessions,
	})
}

// sessionDetailData is the detail page payload: the session plus the
// exercises logged under it.
type sessionDetailData struct {
	Session   *models.TrainingSession
	Exercises []models.SessionExerciseDetail
}

func (s *Server) handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	session, err := s.store.GetTrainingSession(r.Context(), id, sess.UserID)
	if err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	exercises, err := s.store.ListExercisesForSession(r.Context(), id, sess.UserID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "session_detail.html", page{
		Title: "Training session",
		Data:  sessionDetailData{Session: session, Exercises: exercises},
	})
}

func (s *Server) handleSessionCreateForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "session_form.html", page{
		Title: "Add training session",
		Form:  sessionForm{},
	})
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}

	form := sessionFormFromRequest(r)
	session, errs := form.validate(sess.UserID)
	if errs != nil {
		s.render(w, r, http.StatusOK, "session_form.html", page{
			Title:  "Add training session",
			Form:   form,
			Errors: errs,
		})
		return
	}

	if _, err := s.store.CreateTrainingSession(r.Context(), *session); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/training-sessions/", http.StatusFound)
}

func (s *Server) handleSessionEditForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	session, err := s.store.GetTrainingSession(r.Context(), id, sess.UserID)
	if err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "session_form.html", page{
		Title: "Edit training session",
		Form:  sessionFormFromModel(session),
	})
}

func (s *Server) handleSessionEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Confirm the session exists and is owned before validating input, so
	// a miss is a 404 rather than a form error.
	if _, err := s.store.GetTrainingSession(r.Context(), id, sess.UserID); err != nil {
		s.lookupFailed(w, r, err)
		return
	}

	form := sessionFormFromRequest(r)
	session, errs := form.validate(sess.UserID)
	if errs != nil {
		s.render(w, r, http.StatusOK, "session_form.html", page{
			Title:  "Edit training session",
			Form:   form,
			Errors: errs,
		})
		return
	}

	session.ID = id
	if err := s.store.UpdateTrainingSession(r.Context(), *session); err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	http.Redirect(w, r, "/training-sessions/", http.StatusFound)
}

func (s *Server) handleSessionDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	session, err := s.store.GetTrainingSession(r.Context(), id, sess.UserID)
	if err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "session_confirm_delete.html", page{
		Title: "Delete training session",
		Data:  session,
	})
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.mustSession(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := s.store.DeleteTrainingSession(r.Context(), id, sess.UserID); err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	http.Redirect(w, r, "/training-sessions/", http.StatusFound)
}
