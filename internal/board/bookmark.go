package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/sarkaridakiya/dakiya/internal/logger"
	"github.com/sarkaridakiya/dakiya/internal/remote"
)

// ErrUnknownListing is returned for operations on a listing ID the
// board does not hold.
var ErrUnknownListing = errors.New("board: unknown listing")

// BookmarkWriter is the remote side of a bookmark toggle.
type BookmarkWriter interface {
	ToggleBookmark(ctx context.Context, listingID string) (bool, error)
}

// BookmarkStore is the durable side of a bookmark toggle.
type BookmarkStore interface {
	SaveBookmarkSet(ctx context.Context, ids map[string]struct{}) error
}

// Bookmarks runs optimistic bookmark toggles against the board state,
// the durable store and the remote service.
type Bookmarks struct {
	state  *State
	store  BookmarkStore
	remote BookmarkWriter
	logger logger.Logger
}

// NewBookmarks wires the optimistic bookmark path.
func NewBookmarks(state *State, store BookmarkStore, writer BookmarkWriter, log logger.Logger) *Bookmarks {
	return &Bookmarks{
		state:  state,
		store:  store,
		remote: writer,
		logger: log,
	}
}

// txnState tags where a bookmark toggle is in its lifecycle. A toggle
// is never left pending: every exit path commits or reverts.
type txnState int

const (
	txnPending txnState = iota
	txnCommitted
	txnReverted
)

// toggleTxn is one optimistic bookmark transition.
type toggleTxn struct {
	listingID string
	before    bool
	after     bool
	state     txnState
}

// Toggle flips a bookmark optimistically: local membership and the
// durable mirror change first, then the remote write goes out. Any
// remote failure reverts both sides to the pre-toggle state before the
// error is reported; errors.Is(err, remote.ErrUnauthorized) tells the
// caller to send the user back to login.
//
// Returns the post-toggle membership that is actually in effect.
func (b *Bookmarks) Toggle(ctx context.Context, listingID string) (bool, error) {
	if !b.state.HasListing(listingID) {
		return false, ErrUnknownListing
	}

	txn := &toggleTxn{
		listingID: listingID,
		before:    b.state.IsBookmarked(listingID),
	}
	txn.after = b.state.applyBookmark(listingID)

	// Durable mirror follows the optimistic flip immediately.
	if err := b.store.SaveBookmarkSet(ctx, b.state.BookmarkSet()); err != nil {
		b.revert(ctx, txn)
		return txn.before, fmt.Errorf("failed to persist bookmark: %w", err)
	}

	serverState, err := b.remote.ToggleBookmark(ctx, listingID)
	if err != nil {
		b.revert(ctx, txn)
		if errors.Is(err, remote.ErrUnauthorized) {
			b.logger.Warn("bookmark toggle rejected, re-authentication required",
				logger.String("listing", listingID))
			return txn.before, err
		}
		return txn.before, fmt.Errorf("bookmark write failed: %w", err)
	}

	txn.state = txnCommitted
	if serverState != txn.after {
		b.logger.Warn("server bookmark state differs from local toggle",
			logger.String("listing", listingID),
			logger.Bool("local", txn.after),
			logger.Bool("server", serverState))
	}
	return txn.after, nil
}

// revert restores membership and the durable mirror to the pre-toggle
// state. The transition tag guards against double reverts.
func (b *Bookmarks) revert(ctx context.Context, txn *toggleTxn) {
	if txn.state != txnPending {
		return
	}
	txn.state = txnReverted

	if b.state.IsBookmarked(txn.listingID) != txn.before {
		b.state.applyBookmark(txn.listingID)
	}
	if err := b.store.SaveBookmarkSet(ctx, b.state.BookmarkSet()); err != nil {
		b.logger.Error("failed to restore durable bookmark set after revert",
			logger.String("listing", txn.listingID),
			logger.Error(err))
	}
}
