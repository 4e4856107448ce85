package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"blog/internal/metrics"
	"blog/internal/models"
)

// handleRoot serves the index and dispatches the /{id}/update and
// /{id}/delete routes, which the standard mux cannot express alongside
// the literal routes without manual parsing.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		s.handleIndex(w, r)
		return
	}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) == 2 {
		if id, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
			switch parts[1] {
			case "update":
				s.requireAuth(func(w http.ResponseWriter, r *http.Request, user *models.User) {
					s.handleUpdate(w, r, user, id)
				})(w, r)
				return
			case "delete":
				// Method check precedes everything else: delete has no
				// page of its own and only answers POST.
				if r.Method != http.MethodPost {
					http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
					return
				}
				s.requireAuth(func(w http.ResponseWriter, r *http.Request, user *models.User) {
					s.handleDelete(w, r, user, id)
				})(w, r)
				return
			}
		}
	}
	http.NotFound(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	posts, err := models.ListPosts(s.DB)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, "index", map[string]any{"Posts": posts})
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "Hello, World!")
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, user *models.User) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "create", map[string]any{"Form": postForm{}})

	case http.MethodPost:
		form := postForm{
			Title: r.FormValue("title"),
			Body:  r.FormValue("body"),
		}
		if msg := validateForm(form); msg != "" {
			s.render(w, r, "create", map[string]any{"Form": form, "Error": msg})
			return
		}
		// The author is the resolved current user, never client input.
		if _, err := models.CreatePost(s.DB, form.Title, form.Body, user.ID); err != nil {
			s.serverError(w, r, err)
			return
		}
		metrics.PostsTotal.WithLabelValues("created").Inc()
		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request, user *models.User, id int64) {
	post := s.getPost(w, r, id, user, true)
	if post == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		form := postForm{Title: post.Title, Body: post.Body}
		s.render(w, r, "update", map[string]any{"Post": post, "Form": form})

	case http.MethodPost:
		form := postForm{
			Title: r.FormValue("title"),
			Body:  r.FormValue("body"),
		}
		if msg := validateForm(form); msg != "" {
			s.render(w, r, "update", map[string]any{"Post": post, "Form": form, "Error": msg})
			return
		}
		if err := models.UpdatePost(s.DB, id, form.Title, form.Body); err != nil {
			s.serverError(w, r, err)
			return
		}
		metrics.PostsTotal.WithLabelValues("updated").Inc()
		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, user *models.User, id int64) {
	if s.getPost(w, r, id, user, true) == nil {
		return
	}
	if err := models.DeletePost(s.DB, id); err != nil {
		s.serverError(w, r, err)
		return
	}
	metrics.PostsTotal.WithLabelValues("deleted").Inc()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// getPost fetches a post and writes a 404 if it doesn't exist. With
// checkAuthor set it also writes a 403 unless user is the author; pass
// false on read-only paths that don't care who wrote the post. Returns
// nil once a response has been written.
func (s *Server) getPost(w http.ResponseWriter, r *http.Request, id int64, user *models.User, checkAuthor bool) *models.Post {
	post, err := models.GetPost(s.DB, id)
	if errors.Is(err, models.ErrPostNotFound) {
		http.Error(w, fmt.Sprintf("Post id %d doesn't exist.", id), http.StatusNotFound)
		return nil
	}
	if err != nil {
		s.serverError(w, r, err)
		return nil
	}
	if checkAuthor && post.AuthorID != user.ID {
		http.Error(w, "You don't have permission to modify this post.", http.StatusForbidden)
		return nil
	}
	return post
}
