package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	user, err := s.gateway.Signup(req.Email, req.Name, req.Password)
	if err != nil {
		s.fail(w, err)
		return
	}

	if err := s.sessions.RenewToken(r.Context()); err != nil {
		s.fail(w, err)
		return
	}
	s.sessions.Put(r.Context(), sessionUserKey, user.ID())

	s.writeJSON(w, http.StatusCreated, user.Info())
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	// The gateway skips the credential check for an empty password; that
	// path is reserved for session restore, never for the login endpoint.
	if req.Password == "" {
		s.fail(w, fmt.Errorf("%w: password is required", shared.ErrInvalidInput))
		return
	}

	user, err := s.gateway.Login(req.Email, req.Password)
	if err != nil {
		s.fail(w, err)
		return
	}

	if err := s.sessions.RenewToken(r.Context()); err != nil {
		s.fail(w, err)
		return
	}
	s.sessions.Put(r.Context(), sessionUserKey, user.ID())

	s.writeJSON(w, http.StatusOK, user.Info())
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(r.Context()); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if user == nil {
		s.fail(w, shared.ErrNotAuthenticated)
		return
	}
	s.writeJSON(w, http.StatusOK, user.Info())
}
