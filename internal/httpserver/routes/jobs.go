package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sarkaridakiya/dakiya/internal/httpserver/deps"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/handlers"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/mw"
)

func init() { Register(registerJobs) }

func registerJobs(r chi.Router, d deps.Deps) {
	r.Get("/jobs", handlers.ListJobs(d))
	r.Post("/refresh", handlers.Refresh(d))

	r.Post("/jobs/{id}/like", handlers.Like(d))
	r.Post("/jobs/{id}/expand", handlers.Expand(d))
	r.Post("/jobs/{id}/share", handlers.Share(d))
	r.With(mw.RequireSession(d.Sessions)).Post("/jobs/{id}/bookmark", handlers.Bookmark(d))

	r.Get("/jobs/{id}/comments", handlers.ListComments(d))
	r.Post("/jobs/{id}/comments", handlers.AddComment(d))
	r.Post("/comments/{id}/like", handlers.LikeComment(d))

	r.With(mw.RequireAdmin(d.Sessions)).Post("/jobs", handlers.CreateJob(d))
}
