package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// errorResponse is the uniform error body: a human-readable reason the
// front end can show directly.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// fail maps the error taxonomy onto HTTP status codes and writes the
// response.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrMissingArgument),
		errors.Is(err, shared.ErrInvalidArgument):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, shared.ErrWrongPassword),
		errors.Is(err, shared.ErrNotAuthenticated):
		s.writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, shared.ErrForbidden):
		s.writeError(w, http.StatusForbidden, err)
	case errors.Is(err, shared.ErrNotFound),
		errors.Is(err, shared.ErrUserNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, shared.ErrConflict),
		errors.Is(err, shared.ErrEmailTaken):
		s.writeError(w, http.StatusConflict, err)
	default:
		s.logger.Error("internal error", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
	}
}

// currentUser resolves the session to a user record, or nil when logged
// out.
func (s *Server) currentUser(r *http.Request) (*models.User, error) {
	id := s.sessions.GetString(r.Context(), sessionUserKey)
	if id == "" {
		return nil, nil
	}

	user, err := s.store.Users().Get(id)
	if errors.Is(err, shared.ErrUserNotFound) {
		// Stale session referencing a removed account.
		return nil, nil
	}
	return user, err
}

// requireAdmin gates mutating routes behind an admin session.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.currentUser(r)
		if err != nil {
			s.fail(w, err)
			return
		}
		if user == nil {
			s.fail(w, shared.ErrNotAuthenticated)
			return
		}
		if !user.IsAdmin() {
			s.fail(w, shared.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
