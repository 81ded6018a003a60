package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sarkaridakiya/dakiya/internal/httpserver/deps"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/handlers"
)

func init() { Register(registerPrefs) }

func registerPrefs(r chi.Router, d deps.Deps) {
	r.Get("/preferences/sidebar", handlers.GetSidebar(d))
	r.Put("/preferences/sidebar", handlers.PutSidebar(d))
}
