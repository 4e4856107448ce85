package server

import (
	"database/sql"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"blog/internal/session"
)

type Server struct {
	DB       *sql.DB
	Sessions *session.Manager
	Log      zerolog.Logger

	tmpl    map[string]*template.Template
	handler http.Handler
}

func New(db *sql.DB, sessions *session.Manager, log zerolog.Logger, templateDir string) (*Server, error) {
	templates := map[string]*template.Template{}
	layout := filepath.Join(templateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}
	s := &Server{DB: db, Sessions: sessions, Log: log, tmpl: templates}
	s.handler = s.withLogging(s.withUser(s.routes()))
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/hello", s.handleHello)
	mux.HandleFunc("/auth/register", s.handleRegister)
	mux.HandleFunc("/auth/login", s.handleLogin)
	mux.HandleFunc("/auth/logout", s.handleLogout)
	mux.HandleFunc("/create", s.requireAuth(s.handleCreate))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return mux
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	t, ok := s.tmpl[name]
	if !ok {
		s.Log.Error().Str("template", name).Msg("template not found")
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = currentUser(r)
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		s.Log.Error().Err(err).Str("template", name).Msg("render")
	}
}

// serverError reports an unanticipated store or hashing failure. Nothing
// is recovered here: the request dies with a 500 and the cause is logged.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.Log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("unhandled error")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
