package mw

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarkaridakiya/dakiya/internal/domain"
)

type fixedSession struct {
	session *domain.Session
}

func (f fixedSession) Current() *domain.Session { return f.session }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func decodeAuthError(t *testing.T, rec *httptest.ResponseRecorder) authError {
	t.Helper()
	var body authError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireSessionRejectsWithReturnPath(t *testing.T) {
	h := RequireSession(fixedSession{})(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/42/bookmark", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeAuthError(t, rec)
	assert.Equal(t, "authentication required", body.Error)
	assert.Equal(t, "/login?next="+url.QueryEscape("/jobs/42/bookmark"), body.Login)
}

func TestRequireSessionPassesActiveSession(t *testing.T) {
	user := &domain.Session{Name: "Asha", Email: "asha@example.com", Role: domain.RoleUser}
	h := RequireSession(fixedSession{session: user})(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/42/bookmark", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	admin := &domain.Session{Name: "Admin", Email: "admin@sarkaridakiya.in", Role: domain.RoleAdmin}
	user := &domain.Session{Name: "Asha", Email: "asha@example.com", Role: domain.RoleUser}

	tests := []struct {
		name       string
		session    *domain.Session
		wantStatus int
		wantError  string
	}{
		{name: "no session", session: nil, wantStatus: http.StatusUnauthorized, wantError: "authentication required"},
		{name: "plain user", session: user, wantStatus: http.StatusForbidden, wantError: "admin role required"},
		{name: "admin", session: admin, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireAdmin(fixedSession{session: tt.session})(okHandler())

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError == "" {
				return
			}
			body := decodeAuthError(t, rec)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, "/login?next="+url.QueryEscape("/jobs"), body.Login)
		})
	}
}
