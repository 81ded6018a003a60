package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sarkaridakiya/dakiya/internal/httpserver/deps"
	"github.com/sarkaridakiya/dakiya/internal/logger"
)

type sidebarPref struct {
	Collapsed bool `json:"collapsed"`
}

func GetSidebar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collapsed, err := d.Prefs.LoadSidebarCollapsed(r.Context())
		if err != nil {
			d.Logger.Warn("failed to load sidebar preference", logger.Error(err))
			// Default presentation rather than an error page.
			collapsed = false
		}
		writeJSON(w, http.StatusOK, sidebarPref{Collapsed: collapsed})
	}
}

func PutSidebar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sidebarPref
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := d.Prefs.SaveSidebarCollapsed(r.Context(), req.Collapsed); err != nil {
			d.Logger.Error("failed to save sidebar preference", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "preference could not be saved")
			return
		}
		writeJSON(w, http.StatusOK, sidebarPref{Collapsed: req.Collapsed})
	}
}
