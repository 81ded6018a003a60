package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sarkaridakiya/dakiya/internal/domain"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/deps"
	"github.com/sarkaridakiya/dakiya/internal/logger"
	"github.com/sarkaridakiya/dakiya/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Admin     bool   `json:"admin"`
}

func sessionBody(s *domain.Session) sessionResponse {
	return sessionResponse{
		Name:      s.Name,
		Email:     s.Email,
		Role:      string(s.Role),
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Admin:     s.IsAdmin(),
	}
}

func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		err := d.Sessions.Login(r.Context(), req.Email, req.Password, domain.ParseRole(req.Role))
		if err != nil {
			if errors.Is(err, session.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "invalid email or password")
				return
			}
			d.Logger.Error("login failed", logger.Error(err))
			writeError(w, http.StatusBadGateway, "login service unavailable")
			return
		}

		writeJSON(w, http.StatusOK, sessionBody(d.Sessions.Current()))
	}
}

func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		if err := d.Sessions.Signup(r.Context(), req.Name, req.Email, req.Password); err != nil {
			d.Logger.Error("signup failed", logger.Error(err))
			writeError(w, http.StatusBadGateway, "signup failed")
			return
		}

		writeJSON(w, http.StatusCreated, sessionBody(d.Sessions.Current()))
	}
}

func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Sessions.Logout(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

// Profile returns the active session, 401 when logged out.
func Profile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := d.Sessions.Current()
		if s == nil {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		writeJSON(w, http.StatusOK, sessionBody(s))
	}
}
