package handlers

import (
	"net/http"

	"github.com/sarkaridakiya/dakiya/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool `json:"ready"`
	Loaded bool `json:"listings_loaded"`
}

// Readyz reports process readiness. The listings flag tells probes
// whether the primary fetch has succeeded yet; the process is ready
// either way since the board serves seeded data meanwhile.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, readyzResponse{
			Ready:  true,
			Loaded: d.State.Loaded(),
		})
	}
}
