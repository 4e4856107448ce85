package server

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"blog/internal/metrics"
	"blog/internal/models"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "register", map[string]any{"Form": registerForm{}})

	case http.MethodPost:
		form := registerForm{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}
		if msg := validateForm(form); msg != "" {
			s.render(w, r, "register", map[string]any{"Form": form, "Error": msg})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		err = models.CreateUser(s.DB, form.Username, string(hash))
		if errors.Is(err, models.ErrDuplicateUsername) {
			msg := fmt.Sprintf("User %s is already registered.", form.Username)
			s.render(w, r, "register", map[string]any{"Form": form, "Error": msg})
			return
		}
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		metrics.UsersRegisteredTotal.Inc()
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "login", map[string]any{"Form": registerForm{}})

	case http.MethodPost:
		form := registerForm{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}
		user, err := models.GetUserByUsername(s.DB, form.Username)
		if errors.Is(err, sql.ErrNoRows) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			s.render(w, r, "login", map[string]any{"Form": form, "Error": "Incorrect username."})
			return
		}
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			s.render(w, r, "login", map[string]any{"Form": form, "Error": "Incorrect password."})
			return
		}
		// A fresh token replaces any previous session outright.
		if err := s.Sessions.Start(w, user.ID); err != nil {
			s.serverError(w, r, err)
			return
		}
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleLogout clears the session and always succeeds, logged in or not.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Sessions.End(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
