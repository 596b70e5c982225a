package web

import "net/http"

func (s *Server) handleExerciseTypeList(w http.ResponseWriter, r *http.Request) {
	types, err := s.store.ListExerciseTypes(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "exercise_type_list.html", page{
		Title: "Exercise types",
		Data:  types,
	})
}

func (s *Server) handleExerciseTypeCreateForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "exercise_type_form.html", page{
		Title: "Add exercise type",
		Form:  exerciseTypeForm{},
	})
}

func (s *Server) handleExerciseTypeCreate(w http.ResponseWriter, r *http.Request) {
	form := exerciseTypeFormFromRequest(r)
	et, errs := form.validate()
	if errs != nil {
		s.render(w, r, http.StatusOK, "exercise_type_form.html", page{
			Title:  "Add exercise type",
			Form:   form,
			Errors: errs,
		})
		return
	}

	if _, err := s.store.CreateExerciseType(r.Context(), et.Name); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/exercise-types/", http.StatusFound)
}

func (s *Server) handleExerciseTypeEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	et, err := s.store.GetExerciseType(r.Context(), id)
	if err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "exercise_type_form.html", page{
		Title: "Edit exercise type",
		Form:  exerciseTypeForm{Name: et.Name},
	})
}

func (s *Server) handleExerciseTypeEdit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Confirm the catalog entry exists before validating input, so a miss
	// is a 404 rather than a form error.
	if _, err := s.store.GetExerciseType(r.Context(), id); err != nil {
		s.lookupFailed(w, r, err)
		return
	}

	form := exerciseTypeFormFromRequest(r)
	et, errs := form.validate()
	if errs != nil {
		s.render(w, r, http.StatusOK, "exercise_type_form.html", page{
			Title:  "Edit exercise type",
			Form:   form,
			Errors: errs,
		})
		return
	}

	if err := s.store.UpdateExerciseType(r.Context(), id, et.Name); err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	http.Redirect(w, r, "/exercise-types/", http.StatusFound)
}

func (s *Server) handleExerciseTypeDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	et, err := s.store.GetExerciseType(r.Context(), id)
	if err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "exercise_type_confirm_delete.html", page{
		Title: "Delete exercise type",
		Data:  et,
	})
}

func (s *Server) handleExerciseTypeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := s.store.DeleteExerciseType(r.Context(), id); err != nil {
		s.lookupFailed(w, r, err)
		return
	}
	http.Redirect(w, r, "/exercise-types/", http.StatusFound)
}
