package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sarkaridakiya/dakiya/internal/domain"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/deps"
)

type commentsResponse struct {
	Comments []domain.Comment `json:"comments"`
}

func ListComments(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !d.State.HasListing(id) {
			writeError(w, http.StatusNotFound, "unknown listing")
			return
		}
		comments := d.State.CommentsFor(id)
		if comments == nil {
			comments = []domain.Comment{}
		}
		writeJSON(w, http.StatusOK, commentsResponse{Comments: comments})
	}
}

type addCommentRequest struct {
	Content string `json:"content"`
}

// AddComment appends a comment under the active session's name, or
// Anonymous when logged out. Blank content is rejected before it
// reaches the board.
func AddComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req addCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		content := strings.TrimSpace(req.Content)
		if content == "" {
			writeError(w, http.StatusBadRequest, "comment content is required")
			return
		}

		author := ""
		if s := d.Sessions.Current(); s != nil {
			author = s.Name
		}

		comment, found := d.State.AddComment(id, author, content, d.Now())
		if !found {
			writeError(w, http.StatusNotFound, "unknown listing")
			return
		}
		writeJSON(w, http.StatusCreated, comment)
	}
}

// LikeComment bumps a comment's like counter. Likes are not
// deduplicated; every call counts.
func LikeComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !d.State.LikeComment(id) {
			writeError(w, http.StatusNotFound, "unknown comment")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
