package scheduler

import (
	"context"

	"github.com/sarkaridakiya/dakiya/internal/board"
	"github.com/sarkaridakiya/dakiya/internal/logger"
)

// TrendingReloader drives the trending list fetch. A failure here only
// degrades the trending view to the local engagement sort, never the
// whole board.
type TrendingReloader struct {
	api           ListingsAPI
	state         *board.State
	logger        logger.Logger
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewTrendingReloader creates a new trending reloader.
func NewTrendingReloader(
	api ListingsAPI,
	state *board.State,
	log logger.Logger,
	manualTrigger chan struct{},
) *TrendingReloader {
	return &TrendingReloader{
		api:           api,
		state:         state,
		logger:        log,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs the initial fetch and then waits for manual triggers.
func (tr *TrendingReloader) Start(ctx context.Context) {
	tr.Reload(ctx)

	go func() {
		for {
			select {
			case <-tr.manualTrigger:
				tr.logger.Info("manual trending reload triggered")
				tr.Reload(ctx)
			case <-tr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reloader.
func (tr *TrendingReloader) Stop() {
	close(tr.stopCh)
}

// Reload fetches the server-ranked trending list under a generation guard.
func (tr *TrendingReloader) Reload(ctx context.Context) {
	gen := tr.state.BeginTrendingFetch()

	listings, err := tr.api.Trending(ctx)
	if err != nil {
		if tr.state.FailTrending(gen) {
			tr.logger.Warn("trending fetch failed, falling back to local ranking", logger.Error(err))
		}
		return
	}

	if !tr.state.CompleteTrending(gen, listings) {
		tr.logger.Info("stale trending response discarded", logger.Uint64("gen", gen))
		return
	}

	tr.logger.Info("trending list loaded", logger.Int("count", len(listings)))
}
