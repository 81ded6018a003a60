package scheduler

import (
	"context"

	"github.com/sarkaridakiya/dakiya/internal/board"
	"github.com/sarkaridakiya/dakiya/internal/domain"
	"github.com/sarkaridakiya/dakiya/internal/logger"
)

// ListingsAPI is the slice of the remote client the reloaders need.
type ListingsAPI interface {
	Listings(ctx context.Context) ([]domain.Listing, error)
	Trending(ctx context.Context) ([]domain.Listing, error)
}

// BookmarkSaver persists the merged bookmark set after a fetch.
type BookmarkSaver interface {
	SaveBookmarkSet(ctx context.Context, ids map[string]struct{}) error
}

// SessionInvalidator drops the in-memory session after an auth-relevant
// fetch failure.
type SessionInvalidator interface {
	Invalidate()
}

// ListingsReloader drives the primary listing fetch. There is no
// periodic timer: a reload runs once at startup and then only when the
// manual trigger fires.
type ListingsReloader struct {
	api           ListingsAPI
	state         *board.State
	store         BookmarkSaver
	sessions      SessionInvalidator
	logger        logger.Logger
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewListingsReloader creates a new listings reloader.
func NewListingsReloader(
	api ListingsAPI,
	state *board.State,
	store BookmarkSaver,
	sessions SessionInvalidator,
	log logger.Logger,
	manualTrigger chan struct{},
) *ListingsReloader {
	return &ListingsReloader{
		api:           api,
		state:         state,
		store:         store,
		sessions:      sessions,
		logger:        log,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs the initial load and then waits for manual triggers. The
// initial failure is not fatal: the board keeps its seeded listings and
// records the failure for the surface to show.
func (lr *ListingsReloader) Start(ctx context.Context) {
	lr.Reload(ctx)

	go func() {
		for {
			select {
			case <-lr.manualTrigger:
				lr.logger.Info("manual listings reload triggered")
				lr.Reload(ctx)
			case <-lr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reloader.
func (lr *ListingsReloader) Stop() {
	close(lr.stopCh)
}

// Reload fetches the listing set and applies it under a generation
// guard, so a response that lost the race against a newer fetch is
// discarded instead of clobbering fresher data.
func (lr *ListingsReloader) Reload(ctx context.Context) {
	gen := lr.state.BeginListingsFetch()
	lr.logger.Info("fetching listings")

	listings, err := lr.api.Listings(ctx)
	if err != nil {
		if lr.state.FailListings(gen, "Unable to load job listings. Check your connection and retry.") {
			lr.logger.Error("listings fetch failed", logger.Error(err))
			lr.sessions.Invalidate()
		}
		return
	}

	if !lr.state.CompleteListings(gen, listings) {
		lr.logger.Info("stale listings response discarded", logger.Uint64("gen", gen))
		return
	}

	lr.logger.Info("listings loaded", logger.Int("count", len(listings)))

	// Server-side bookmark hints were merged into the local set; mirror
	// the merged result durably (best effort).
	if lr.store != nil {
		if err := lr.store.SaveBookmarkSet(ctx, lr.state.BookmarkSet()); err != nil {
			lr.logger.Warn("failed to persist merged bookmarks", logger.Error(err))
		}
	}
}
