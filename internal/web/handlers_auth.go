package web

import (
	"errors"
	"net/http"

	"github.com/meltforce/trainlog/internal/auth"
	"github.com/meltforce/trainlog/internal/models"
	"github.com/meltforce/trainlog/internal/storage"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home.html", page{Title: "TrainLog"})
}

type loginForm struct {
	Username string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/training-sessions/", http.StatusFound)
		return
	}
	s.render(w, r, http.StatusOK, "login.html", page{Title: "Log in", Form: loginForm{}})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	// One generic message for both unknown user and bad password, so the
	// form does not reveal which usernames exist.
	badCredentials := func() {
		s.render(w, r, http.StatusOK, "login.html", page{
			Title:  "Log in",
			Form:   loginForm{Username: username},
			Errors: models.FieldErrors{"login": "invalid username or password"},
		})
	}

	user, err := s.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			badCredentials()
			return
		}
		s.serverError(w, r, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		badCredentials()
		return
	}

	token := s.sessions.Create(user.ID, user.Username, user.IsAdmin)
	auth.SetSessionCookie(w, token)
	http.Redirect(w, r, "/training-sessions/", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := auth.TokenFromRequest(r); ok {
		s.sessions.Delete(token)
	}
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
