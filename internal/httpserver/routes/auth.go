package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sarkaridakiya/dakiya/internal/httpserver/deps"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/handlers"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	login := r
	if d.LoginRateLimit > 0 {
		window := d.LoginRateWindow
		if window <= 0 {
			window = time.Minute
		}
		perMin := int(float64(d.LoginRateLimit) / window.Minutes())
		login = r.With(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.LoginRateLimit,
			RefillPerIPPerMin: perMin,
			MaxEntries:        10_000,
			TrustProxy:        d.TrustProxy,
		}))
	}
	login.Post("/login", handlers.Login(d))
	login.Post("/register", handlers.Register(d))

	r.Post("/logout", handlers.Logout(d))
	r.Get("/profile", handlers.Profile(d))
}
