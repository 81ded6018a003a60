package mw

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/sarkaridakiya/dakiya/internal/domain"
)

// SessionSource exposes the active session, nil when logged out.
type SessionSource interface {
	Current() *domain.Session
}

type authError struct {
	Error string `json:"error"`
	Login string `json:"login"`
}

// RequireSession rejects requests without an active session. The
// response carries the login URL with the attempted path as the
// return target, so the client can resume after authenticating.
func RequireSession(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessions.Current() == nil {
				WriteAuthError(w, http.StatusUnauthorized, "authentication required", r.URL.Path)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests unless the active session is an admin.
func RequireAdmin(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := sessions.Current()
			if s == nil {
				WriteAuthError(w, http.StatusUnauthorized, "authentication required", r.URL.Path)
				return
			}
			if !s.IsAdmin() {
				WriteAuthError(w, http.StatusForbidden, "admin role required", r.URL.Path)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteAuthError writes the auth rejection body shared by the guards
// and by handlers that lose authorization mid-request. The login URL
// carries the attempted path so the client can return after logging in.
func WriteAuthError(w http.ResponseWriter, status int, msg, next string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(authError{
		Error: msg,
		Login: "/login?next=" + url.QueryEscape(next),
	})
}
