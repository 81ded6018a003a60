package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarkaridakiya/dakiya/internal/board"
	"github.com/sarkaridakiya/dakiya/internal/domain"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/deps"
	"github.com/sarkaridakiya/dakiya/internal/logger"
	"github.com/sarkaridakiya/dakiya/internal/remote"
	"github.com/sarkaridakiya/dakiya/internal/session"
)

type stubSessions struct {
	current     *domain.Session
	loginErr    error
	invalidated int
}

func (s *stubSessions) Current() *domain.Session { return s.current }

func (s *stubSessions) Login(_ context.Context, email, _ string, role domain.Role) error {
	if s.loginErr != nil {
		return s.loginErr
	}
	s.current = &domain.Session{Name: email, Email: email, Role: role}
	return nil
}

func (s *stubSessions) Signup(_ context.Context, name, email, _ string) error {
	s.current = &domain.Session{Name: name, Email: email, Role: domain.RoleUser}
	return nil
}

func (s *stubSessions) Logout(context.Context) { s.current = nil }

func (s *stubSessions) Invalidate() {
	s.current = nil
	s.invalidated++
}

type stubBookmarks struct {
	state *board.State
	err   error
}

func (b *stubBookmarks) Toggle(_ context.Context, id string) (bool, error) {
	if b.err != nil {
		return false, b.err
	}
	if !b.state.HasListing(id) {
		return false, board.ErrUnknownListing
	}
	set := b.state.BookmarkSet()
	if _, ok := set[id]; ok {
		delete(set, id)
		b.state.SetBookmarks(set)
		return false, nil
	}
	set[id] = struct{}{}
	b.state.SetBookmarks(set)
	return true, nil
}

type stubPrefs struct {
	collapsed bool
	loadErr   error
	saveErr   error
}

func (p *stubPrefs) SaveSidebarCollapsed(_ context.Context, collapsed bool) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.collapsed = collapsed
	return nil
}

func (p *stubPrefs) LoadSidebarCollapsed(context.Context) (bool, error) {
	return p.collapsed, p.loadErr
}

func testDeps() (deps.Deps, *board.State, *stubSessions, *stubPrefs) {
	state := board.NewState()
	state.SeedListings([]domain.Listing{
		{ID: "1", Title: "Railway Recruitment", Department: "Indian Railways", Category: domain.CategoryRailway, Likes: 5},
		{ID: "2", Title: "Bank PO", Department: "SBI", Category: domain.CategoryBanking, Likes: 20},
	}, nil)
	state.CompleteListings(state.BeginListingsFetch(), state.Listings())

	sessions := &stubSessions{}
	prefs := &stubPrefs{}
	d := deps.Deps{
		Logger:          logger.New("error", false),
		StartTime:       time.Now(),
		TimeNow:         time.Now,
		State:           state,
		Bookmarks:       &stubBookmarks{state: state},
		Sessions:        sessions,
		Prefs:           prefs,
		ListingsTrigger: make(chan struct{}, 1),
		TrendingTrigger: make(chan struct{}, 1),
	}
	return d, state, sessions, prefs
}

func testRouter(d deps.Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/jobs", ListJobs(d))
	r.Post("/jobs", CreateJob(d))
	r.Post("/refresh", Refresh(d))
	r.Post("/jobs/{id}/like", Like(d))
	r.Post("/jobs/{id}/expand", Expand(d))
	r.Post("/jobs/{id}/share", Share(d))
	r.Post("/jobs/{id}/bookmark", Bookmark(d))
	r.Get("/jobs/{id}/comments", ListComments(d))
	r.Post("/jobs/{id}/comments", AddComment(d))
	r.Post("/comments/{id}/like", LikeComment(d))
	r.Post("/login", Login(d))
	r.Post("/register", Register(d))
	r.Post("/logout", Logout(d))
	r.Get("/profile", Profile(d))
	r.Get("/preferences/sidebar", GetSidebar(d))
	r.Put("/preferences/sidebar", PutSidebar(d))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestListJobsComposesView(t *testing.T) {
	d, _, _, _ := testDeps()
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[jobsResponse](t, rec)
	assert.Len(t, res.Listings, 2)
	assert.True(t, res.Loaded)
	assert.Equal(t, domain.AllJobsFilter, res.Category)
	assert.Equal(t, string(domain.ViewAll), res.View)
}

func TestListJobsAppliesFilters(t *testing.T) {
	d, _, _, _ := testDeps()
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodGet, "/jobs?query=railway", nil)
	res := decode[jobsResponse](t, rec)
	require.Len(t, res.Listings, 1)
	assert.Equal(t, "Railway Recruitment", res.Listings[0].Title)
	assert.Equal(t, "railway", res.Query)

	// No params: the filter sticks until changed.
	rec = doJSON(t, r, http.MethodGet, "/jobs", nil)
	res = decode[jobsResponse](t, rec)
	assert.Len(t, res.Listings, 1)

	// Explicit empty query clears it.
	rec = doJSON(t, r, http.MethodGet, "/jobs?query=", nil)
	res = decode[jobsResponse](t, rec)
	assert.Len(t, res.Listings, 2)
}

func TestListJobsTrendingView(t *testing.T) {
	d, _, _, _ := testDeps()
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodGet, "/jobs?view=trending", nil)
	res := decode[jobsResponse](t, rec)
	require.Len(t, res.Listings, 2)
	assert.Equal(t, "Bank PO", res.Listings[0].Title, "highest engagement first")
	assert.False(t, res.TrendingDegraded)

	// A failed trending fetch flips the degraded badge on.
	d.State.FailTrending(d.State.BeginTrendingFetch())
	rec = doJSON(t, r, http.MethodGet, "/jobs?view=trending", nil)
	res = decode[jobsResponse](t, rec)
	assert.True(t, res.TrendingDegraded)
}

func TestRefreshBumpsCounterAndSignals(t *testing.T) {
	d, state, _, _ := testDeps()
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodPost, "/refresh", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)

	res := decode[refreshResponse](t, rec)
	assert.True(t, res.Triggered)
	assert.Equal(t, uint64(1), res.RetryCount)
	assert.Equal(t, uint64(1), state.RetryCount())

	select {
	case <-d.ListingsTrigger:
	default:
		t.Error("listings trigger should have been signalled")
	}
	select {
	case <-d.TrendingTrigger:
	default:
		t.Error("trending trigger should have been signalled")
	}
}

func TestLikeToggle(t *testing.T) {
	d, state, _, _ := testDeps()
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodPost, "/jobs/1/like", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[likeResponse](t, rec).Liked)

	rec = doJSON(t, r, http.MethodPost, "/jobs/1/like", nil)
	assert.False(t, decode[likeResponse](t, rec).Liked)

	liked, _, _ := state.Flags("1")
	assert.False(t, liked)

	rec = doJSON(t, r, http.MethodPost, "/jobs/missing/like", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShareReturnsLink(t *testing.T) {
	d, state, _, _ := testDeps()
	state.AddListing(domain.Listing{ID: "n1", Title: "With Notice", Notification: &domain.Notification{URL: "https://x/notice.pdf", Name: "Notice"}})
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodPost, "/jobs/n1/share", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[shareResponse](t, rec)
	assert.Equal(t, 1, res.Shares)
	assert.Equal(t, "https://x/notice.pdf", res.Link)
}

func TestBookmarkToggleAndErrors(t *testing.T) {
	d, _, _, _ := testDeps()
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodPost, "/jobs/1/bookmark", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[bookmarkResponse](t, rec).Bookmarked)

	rec = doJSON(t, r, http.MethodPost, "/jobs/missing/bookmark", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	d.Bookmarks = &stubBookmarks{err: errors.New("redis down")}
	r = testRouter(d)
	rec = doJSON(t, r, http.MethodPost, "/jobs/1/bookmark", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestBookmarkAuthRejectionInvalidatesSession(t *testing.T) {
	d, _, sessions, _ := testDeps()
	sessions.current = &domain.Session{Name: "Asha", Email: "asha@example.com", Role: domain.RoleUser}
	d.Bookmarks = &stubBookmarks{err: &remote.StatusError{Status: 403, Body: "token revoked"}}
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodPost, "/jobs/1/bookmark", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Error string `json:"error"`
		Login string `json:"login"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "session expired, log in again", body.Error)
	assert.Equal(t, "/login?next="+url.QueryEscape("/jobs/1/bookmark"), body.Login)

	// The stale session is gone, so the next guarded request starts
	// from the login flow instead of reusing dead credentials.
	assert.Equal(t, 1, sessions.invalidated)
	assert.Nil(t, sessions.Current())
}

func TestCommentsFlow(t *testing.T) {
	d, state, sessions, _ := testDeps()
	sessions.current = &domain.Session{Name: "Asha", Email: "asha@example.com", Role: domain.RoleUser}
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodPost, "/jobs/1/comments", addCommentRequest{Content: "Good luck!"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[domain.Comment](t, rec)
	assert.Equal(t, "Asha", created.Author)
	assert.Equal(t, "Good luck!", created.Content)

	rec = doJSON(t, r, http.MethodGet, "/jobs/1/comments", nil)
	list := decode[commentsResponse](t, rec)
	require.Len(t, list.Comments, 1)

	rec = doJSON(t, r, http.MethodPost, "/comments/"+created.ID+"/like", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, state.CommentsFor("1")[0].Likes)

	// Counter on the listing moved too.
	for _, l := range state.Listings() {
		if l.ID == "1" {
			assert.Equal(t, 1, l.Comments)
		}
	}
}

func TestCommentValidation(t *testing.T) {
	d, _, _, _ := testDeps()
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodPost, "/jobs/1/comments", addCommentRequest{Content: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/jobs/missing/comments", addCommentRequest{Content: "hello"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Logged out: comment lands as Anonymous.
	rec = doJSON(t, r, http.MethodPost, "/jobs/1/comments", addCommentRequest{Content: "hello"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.AnonymousAuthor, decode[domain.Comment](t, rec).Author)
}

func TestLoginHandler(t *testing.T) {
	d, _, sessions, _ := testDeps()
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodPost, "/login", loginRequest{Email: "a@b.c", Password: "pw", Role: "admin"})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[sessionResponse](t, rec)
	assert.Equal(t, "a@b.c", res.Email)
	assert.True(t, res.Admin)

	sessions.current = nil
	sessions.loginErr = session.ErrInvalidCredentials
	rec = doJSON(t, r, http.MethodPost, "/login", loginRequest{Email: "a@b.c", Password: "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sessions.loginErr = errors.New("upstream down")
	rec = doJSON(t, r, http.MethodPost, "/login", loginRequest{Email: "a@b.c", Password: "pw"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/login", loginRequest{Email: "", Password: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileAndLogout(t *testing.T) {
	d, _, sessions, _ := testDeps()
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sessions.current = &domain.Session{Name: "Asha", Email: "asha@example.com", Role: domain.RoleUser}
	rec = doJSON(t, r, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Asha", decode[sessionResponse](t, rec).Name)

	rec = doJSON(t, r, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, sessions.current)
}

func TestCreateJob(t *testing.T) {
	d, state, _, _ := testDeps()
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodPost, "/jobs", createJobRequest{
		Title:    "  UPSC CSE 2026  ",
		Category: "upsc",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[domain.Listing](t, rec)
	assert.Equal(t, "UPSC CSE 2026", created.Title)
	assert.Equal(t, domain.CategoryUPSC, created.Category)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.PostedDate)

	// New listing is prepended.
	listings := state.Listings()
	require.Len(t, listings, 3)
	assert.Equal(t, created.ID, listings[0].ID)

	rec = doJSON(t, r, http.MethodPost, "/jobs", createJobRequest{Title: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSidebarPreference(t *testing.T) {
	d, _, _, prefs := testDeps()
	r := testRouter(d)

	rec := doJSON(t, r, http.MethodGet, "/preferences/sidebar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[sidebarPref](t, rec).Collapsed)

	rec = doJSON(t, r, http.MethodPut, "/preferences/sidebar", sidebarPref{Collapsed: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, prefs.collapsed)

	rec = doJSON(t, r, http.MethodGet, "/preferences/sidebar", nil)
	assert.True(t, decode[sidebarPref](t, rec).Collapsed)

	prefs.loadErr = errors.New("redis down")
	rec = doJSON(t, r, http.MethodGet, "/preferences/sidebar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[sidebarPref](t, rec).Collapsed, "load failure falls back to default")
}
