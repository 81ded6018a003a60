// Package board owns the application state: the listing set, the
// per-listing comment threads, the interaction sets and the view state.
//
// All shared mutable state lives behind one State value and is touched
// only through its methods. Every mutation derives the next state from
// the current state under the lock, never from a caller-held snapshot.
package board

import (
	"sync"
	"time"

	"github.com/sarkaridakiya/dakiya/internal/domain"
)

// State is the single owner of board data. Reads take the read lock,
// mutations the write lock; sets are replaced or flipped atomically.
type State struct {
	mu sync.RWMutex

	listings []domain.Listing
	comments map[string][]domain.Comment

	liked      map[string]struct{}
	bookmarked map[string]struct{}
	expanded   map[string]struct{}

	query    string
	category string
	view     domain.ViewMode

	trending         []domain.Listing
	trendingLoaded   bool
	trendingDegraded bool

	// Fetch bookkeeping. Generations discard stale completions, the
	// retry counter is the user-facing monotonic retry signal.
	listingsGen uint64
	trendingGen uint64
	loaded      bool
	loadFailure string
	retrySeq    uint64
}

// NewState creates an empty board with default view state.
func NewState() *State {
	return &State{
		comments:   make(map[string][]domain.Comment),
		liked:      make(map[string]struct{}),
		bookmarked: make(map[string]struct{}),
		expanded:   make(map[string]struct{}),
		category:   domain.AllJobsFilter,
		view:       domain.ViewAll,
	}
}

// ─────────────────────────────────────────────────────────────────
// Listing set
// ─────────────────────────────────────────────────────────────────

// SeedListings installs an initial listing set (and optional comment
// threads) without touching fetch bookkeeping. Used for the YAML seed
// file before the first successful fetch.
func (s *State) SeedListings(listings []domain.Listing, comments map[string][]domain.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listings = append([]domain.Listing(nil), listings...)
	for id, thread := range comments {
		s.comments[id] = append([]domain.Comment(nil), thread...)
	}
}

// Listings returns a copy of the full listing set, order preserved.
func (s *State) Listings() []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Listing(nil), s.listings...)
}

// HasListing reports whether a listing ID is known.
func (s *State) HasListing(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexOf(id) >= 0
}

// AddListing prepends an admin-created listing.
func (s *State) AddListing(l domain.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listings = append([]domain.Listing{l}, s.listings...)
}

// indexOf returns the position of a listing, -1 when absent.
// Caller holds the lock.
func (s *State) indexOf(id string) int {
	for i := range s.listings {
		if s.listings[i].ID == id {
			return i
		}
	}
	return -1
}

// ─────────────────────────────────────────────────────────────────
// Fetch bookkeeping
// ─────────────────────────────────────────────────────────────────

// BeginListingsFetch opens a new fetch generation. Any earlier fetch
// still in flight completes against a stale generation and is dropped.
func (s *State) BeginListingsFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listingsGen++
	return s.listingsGen
}

// CompleteListings installs a fetched listing set if the generation is
// still current. Server bookmark annotations merge into the bookmark
// set. Returns false when the result was stale and discarded.
func (s *State) CompleteListings(gen uint64, listings []domain.Listing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.listingsGen {
		return false
	}

	s.listings = append([]domain.Listing(nil), listings...)
	for _, l := range listings {
		if l.Bookmarked {
			s.bookmarked[l.ID] = struct{}{}
		}
	}
	s.loaded = true
	s.loadFailure = ""
	return true
}

// FailListings records a primary-fetch failure. The failure text is
// what the notification shows; it is distinct from a loaded-empty set.
func (s *State) FailListings(gen uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.listingsGen {
		return false
	}

	s.loadFailure = msg
	return true
}

// Loaded reports whether a primary fetch has ever succeeded.
func (s *State) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// LoadFailure returns the current failure notification text, empty
// when the last fetch succeeded.
func (s *State) LoadFailure() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadFailure
}

// BumpRetry advances the monotonic retry counter and returns it.
func (s *State) BumpRetry() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.retrySeq++
	return s.retrySeq
}

// RetryCount returns the number of user-initiated retries so far.
func (s *State) RetryCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.retrySeq
}

// BeginTrendingFetch opens a new trending fetch generation.
func (s *State) BeginTrendingFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trendingGen++
	return s.trendingGen
}

// CompleteTrending installs the server trending list if the generation
// is still current. Server ordering is kept verbatim.
func (s *State) CompleteTrending(gen uint64, listings []domain.Listing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.trendingGen {
		return false
	}

	s.trending = append([]domain.Listing(nil), listings...)
	s.trendingLoaded = true
	s.trendingDegraded = false
	return true
}

// FailTrending marks the trending view degraded: the board falls back
// to the locally sorted set and shows a degraded badge.
func (s *State) FailTrending(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.trendingGen {
		return false
	}

	s.trendingLoaded = false
	s.trendingDegraded = true
	return true
}

// TrendingDegraded reports whether the last trending fetch failed.
func (s *State) TrendingDegraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.trendingDegraded
}

// ─────────────────────────────────────────────────────────────────
// View state
// ─────────────────────────────────────────────────────────────────

// SetQuery updates the search text.
func (s *State) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query
}

// SetCategory updates the category filter.
func (s *State) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == "" {
		category = domain.AllJobsFilter
	}
	s.category = category
}

// SetView updates the view mode.
func (s *State) SetView(view domain.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view = view
}

// ViewState returns the current query, category filter and view mode.
func (s *State) ViewState() (query, category string, view domain.ViewMode) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.query, s.category, s.view
}

// Visible composes the listing subset to render. In trending mode a
// successfully loaded server list supersedes the local computation
// entirely; otherwise the pure composer runs over current state.
func (s *State) Visible() []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.view == domain.ViewTrending && s.trendingLoaded {
		return append([]domain.Listing(nil), s.trending...)
	}
	return domain.Compose(s.listings, s.query, s.category, s.view, s.bookmarked)
}

// ─────────────────────────────────────────────────────────────────
// Interaction sets
// ─────────────────────────────────────────────────────────────────

// ToggleLike flips like membership for a listing and adjusts its like
// counter by one in the matching direction. Purely local.
func (s *State) ToggleLike(id string) (nowLiked, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, false
	}

	if _, liked := s.liked[id]; liked {
		delete(s.liked, id)
		if s.listings[i].Likes > 0 {
			s.listings[i].Likes--
		}
		return false, true
	}

	s.liked[id] = struct{}{}
	s.listings[i].Likes++
	return true, true
}

// ToggleExpand flips comment-thread expansion for a listing.
func (s *State) ToggleExpand(id string) (nowExpanded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expanded[id]; ok {
		delete(s.expanded, id)
		return false
	}
	s.expanded[id] = struct{}{}
	return true
}

// applyBookmark flips bookmark membership and returns the new state.
// Exposed only through the optimistic toggle in bookmark.go.
func (s *State) applyBookmark(id string) (nowBookmarked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookmarked[id]; ok {
		delete(s.bookmarked, id)
		return false
	}
	s.bookmarked[id] = struct{}{}
	return true
}

// IsBookmarked reports bookmark membership.
func (s *State) IsBookmarked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.bookmarked[id]
	return ok
}

// BookmarkSet returns a copy of the bookmarked-id set.
func (s *State) BookmarkSet() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]struct{}, len(s.bookmarked))
	for id := range s.bookmarked {
		out[id] = struct{}{}
	}
	return out
}

// SetBookmarks replaces the bookmark set, e.g. from durable storage at
// startup.
func (s *State) SetBookmarks(ids map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookmarked = make(map[string]struct{}, len(ids))
	for id := range ids {
		s.bookmarked[id] = struct{}{}
	}
}

// Flags returns the interaction flags for one listing.
func (s *State) Flags(id string) (liked, bookmarked, expanded bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, liked = s.liked[id]
	_, bookmarked = s.bookmarked[id]
	_, expanded = s.expanded[id]
	return liked, bookmarked, expanded
}

// ResetInteractions clears every interaction set and returns the view
// state to defaults. Called on logout. Listings and comment threads
// are server data and stay.
func (s *State) ResetInteractions() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.liked = make(map[string]struct{})
	s.bookmarked = make(map[string]struct{})
	s.expanded = make(map[string]struct{})
	s.query = ""
	s.category = domain.AllJobsFilter
	s.view = domain.ViewAll
}

// ─────────────────────────────────────────────────────────────────
// Comments and shares
// ─────────────────────────────────────────────────────────────────

// AddComment appends a client-generated comment to a listing's thread
// and increments the listing's comment counter. Local-only; a backend
// integration point would sit here.
func (s *State) AddComment(listingID, author, content string, now time.Time) (domain.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(listingID)
	if i < 0 {
		return domain.Comment{}, false
	}

	comment := domain.NewComment(author, content, now)
	s.comments[listingID] = append(s.comments[listingID], comment)
	s.listings[i].Comments++
	return comment, true
}

// CommentsFor returns a copy of one listing's comment thread, in
// append order.
func (s *State) CommentsFor(listingID string) []domain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Comment(nil), s.comments[listingID]...)
}

// LikeComment increments a comment's like counter by exactly one.
// Repeat likes from the same viewer are not deduplicated; the data
// model carries no per-viewer identity for comments.
func (s *State) LikeComment(commentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for listingID := range s.comments {
		thread := s.comments[listingID]
		for i := range thread {
			if thread[i].ID == commentID {
				thread[i].Likes++
				return true
			}
		}
	}
	return false
}

// Share bumps a listing's share counter and returns the listing for
// the share sheet.
func (s *State) Share(id string) (domain.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Listing{}, false
	}

	s.listings[i].Shares++
	return s.listings[i], true
}
