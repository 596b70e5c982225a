package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/meltforce/trainlog/internal/auth"
	"github.com/meltforce/trainlog/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// page is the envelope every template receives. Form carries the submitted
// (or prefilled) input so a failed validation re-renders what the user
// typed; Errors annotates individual fields.
type page struct {
	Title  string
	User   *auth.Session
	CSRF   template.HTML
	Errors models.FieldErrors
	Form   any
	Data   any
}

// Renderer executes the embedded HTML templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded template set.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named template. The body is buffered first so a
// template error can still produce a clean 500 instead of a torn page.
func (rd *Renderer) Render(w http.ResponseWriter, status int, name string, data page) error {
	var buf bytes.Buffer
	if err := rd.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// render fills in the request-derived page fields (identity, CSRF token)
// and hands off to the renderer.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	if sess, ok := auth.SessionFromContext(r.Context()); ok {
		p.User = &sess
	}
	p.CSRF = csrf.TemplateField(r)
	if err := s.renderer.Render(w, status, name, p); err != nil {
		s.log.Error("render failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
