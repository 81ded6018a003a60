package deps

import (
	"context"
	"time"

	"github.com/sarkaridakiya/dakiya/internal/board"
	"github.com/sarkaridakiya/dakiya/internal/domain"
	"github.com/sarkaridakiya/dakiya/internal/logger"
)

// Sessions is the slice of the session manager the handlers need.
type Sessions interface {
	Current() *domain.Session
	Login(ctx context.Context, email, password string, role domain.Role) error
	Signup(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context)
	Invalidate()
}

// BookmarkToggler performs the optimistic bookmark write.
type BookmarkToggler interface {
	Toggle(ctx context.Context, listingID string) (bool, error)
}

// PrefsStore persists presentation preferences.
type PrefsStore interface {
	SaveSidebarCollapsed(ctx context.Context, collapsed bool) error
	LoadSidebarCollapsed(ctx context.Context) (bool, error)
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	State     *board.State    // board state, the single source of truth for the view
	Bookmarks BookmarkToggler // optimistic bookmark writes
	Sessions  Sessions        // session manager
	Prefs     PrefsStore      // sidebar preference persistence

	ListingsTrigger chan struct{} // channel to trigger a manual listings reload
	TrendingTrigger chan struct{} // channel to trigger a manual trending reload

	LoginRateLimit  int           // login attempts per window per client IP (0 = disabled)
	LoginRateWindow time.Duration // rate limit window
	TrustProxy      bool          // true if running behind a trusted reverse proxy
}

// Now returns the injected clock, defaulting to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
