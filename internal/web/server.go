package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/trainlog/internal/auth"
	"github.com/meltforce/trainlog/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    Store
	sessions *auth.SessionStore
	renderer *Renderer
	log      *slog.Logger
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, sessions *auth.SessionStore, log *slog.Logger) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	s := &Server{
		store:    store,
		sessions: sessions,
		renderer: renderer,
		log:      log,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(LoadSession(s.sessions))

	s.router.Get("/", s.handleHome)
	s.router.Get("/login", s.handleLoginForm)
	s.router.Post("/login", s.handleLogin)
	s.router.Post("/logout", s.handleLogout)

	s.router.Route("/exercise-types", func(r chi.Router) {
		r.With(requireCapability(EntityExerciseType, OpList)).
			Get("/", s.handleExerciseTypeList)
		r.Route("/create", func(r chi.Router) {
			r.Use(requireCapability(EntityExerciseType, OpCreate))
			r.Get("/", s.handleExerciseTypeCreateForm)
			r.Post("/", s.handleExerciseTypeCreate)
		})
		r.Route("/{id}/edit", func(r chi.Router) {
			r.Use(requireCapability(EntityExerciseType, OpEdit))
			r.Get("/", s.handleExerciseTypeEditForm)
			r.Post("/", s.handleExerciseTypeEdit)
		})
		r.Route("/{id}/delete", func(r chi.Router) {
			r.Use(requireCapability(EntityExerciseType, OpDelete))
			r.Get("/", s.handleExerciseTypeDeleteConfirm)
			r.Post("/", s.handleExerciseTypeDelete)
		})
	})

	s.router.Route("/training-sessions", func(r chi.Router) {
		r.Use(requireCapability(EntityTrainingSession, OpList))
		r.Get("/", s.handleSessionList)
		r.Get("/create/", s.handleSessionCreateForm)
		r.Post("/create/", s.handleSessionCreate)
		r.Get("/{id}/", s.handleSessionDetail)
		r.Get("/{id}/edit/", s.handleSessionEditForm)
		r.Post("/{id}/edit/", s.handleSessionEdit)
		r.Get("/{id}/delete/", s.handleSessionDeleteConfirm)
		r.Post("/{id}/delete/", s.handleSessionDelete)
	})

	s.router.Route("/session-exercises", func(r chi.Router) {
		r.Use(requireCapability(EntitySessionExercise, OpList))
		r.Get("/", s.handleExerciseList)
		r.Get("/create/", s.handleExerciseCreateForm)
		r.Post("/create/", s.handleExerciseCreate)
		r.Get("/{id}/", s.handleExerciseDetail)
		r.Get("/{id}/edit/", s.handleExerciseEditForm)
		r.Post("/{id}/edit/", s.handleExerciseEdit)
		r.Get("/{id}/delete/", s.handleExerciseDeleteConfirm)
		r.Post("/{id}/delete/", s.handleExerciseDelete)
	})

	s.router.With(RequireUser).Get("/stats/", s.handleStats)
}

// mustSession returns the request identity. The capability middleware
// guarantees it exists on protected routes; the false case is a wiring bug.
func (s *Server) mustSession(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		s.log.Error("protected handler reached without session", "path", r.URL.Path)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return auth.Session{}, false
	}
	return sess, true
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// serverError logs the error and responds with a generic 500.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("handler error", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// lookupFailed maps a storage error onto a response: ErrNotFound becomes a
// 404 (also used for ownership misses, so another user's records are
// indistinguishable from absent ones), anything else a 500.
func (s *Server) lookupFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	s.serverError(w, r, err)
}
