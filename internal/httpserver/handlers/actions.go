package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sarkaridakiya/dakiya/internal/board"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/deps"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/mw"
	"github.com/sarkaridakiya/dakiya/internal/logger"
	"github.com/sarkaridakiya/dakiya/internal/remote"
)

type likeResponse struct {
	Liked bool `json:"liked"`
}

func Like(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		liked, found := d.State.ToggleLike(id)
		if !found {
			writeError(w, http.StatusNotFound, "unknown listing")
			return
		}
		writeJSON(w, http.StatusOK, likeResponse{Liked: liked})
	}
}

type expandResponse struct {
	Expanded bool `json:"expanded"`
}

func Expand(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !d.State.HasListing(id) {
			writeError(w, http.StatusNotFound, "unknown listing")
			return
		}
		writeJSON(w, http.StatusOK, expandResponse{Expanded: d.State.ToggleExpand(id)})
	}
}

type shareResponse struct {
	Shares int    `json:"shares"`
	Link   string `json:"link,omitempty"`
}

// Share bumps the share counter and returns the link the client should
// put on the clipboard.
func Share(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		listing, found := d.State.Share(id)
		if !found {
			writeError(w, http.StatusNotFound, "unknown listing")
			return
		}
		link := listing.ApplyLink
		if link == "" && listing.Notification != nil {
			link = listing.Notification.URL
		}
		writeJSON(w, http.StatusOK, shareResponse{Shares: listing.Shares, Link: link})
	}
}

type bookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

// Bookmark runs the optimistic toggle. A failed write has already been
// rolled back by the time the error reaches here, so the client only
// needs to re-render from the returned state.
func Bookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		bookmarked, err := d.Bookmarks.Toggle(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, board.ErrUnknownListing):
				writeError(w, http.StatusNotFound, "unknown listing")
			case errors.Is(err, remote.ErrUnauthorized):
				d.Sessions.Invalidate()
				mw.WriteAuthError(w, http.StatusUnauthorized, "session expired, log in again", r.URL.Path)
			default:
				d.Logger.Error("bookmark toggle failed", logger.String("id", id), logger.Error(err))
				writeError(w, http.StatusBadGateway, "bookmark could not be saved")
			}
			return
		}
		writeJSON(w, http.StatusOK, bookmarkResponse{Bookmarked: bookmarked})
	}
}
