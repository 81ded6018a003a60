// Package session owns the user identity: login, signup, logout,
// profile refresh, durable token persistence and startup restore.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sarkaridakiya/dakiya/internal/board"
	"github.com/sarkaridakiya/dakiya/internal/domain"
	"github.com/sarkaridakiya/dakiya/internal/logger"
	"github.com/sarkaridakiya/dakiya/internal/remote"
)

// ErrInvalidCredentials is a reachable server rejecting the login.
var ErrInvalidCredentials = errors.New("session: invalid credentials")

// API is the slice of the remote client the manager needs.
type API interface {
	Login(ctx context.Context, creds remote.Credentials) (*remote.AuthResult, error)
	Register(ctx context.Context, reg remote.Registration) (*remote.AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	LoadProfile(ctx context.Context) (*remote.Profile, error)
}

// Store is the durable side of session state.
type Store interface {
	SaveSession(ctx context.Context, session *domain.Session) error
	LoadSession(ctx context.Context) (*domain.Session, error)
	SaveTokens(ctx context.Context, access, refresh string) error
	LoadTokens(ctx context.Context) (access, refresh string, err error)
	ClearSession(ctx context.Context) error
	SaveBookmarkSet(ctx context.Context, ids map[string]struct{}) error
	LoadBookmarkSet(ctx context.Context) (map[string]struct{}, error)
}

// Manager holds the at-most-one active session and its tokens.
type Manager struct {
	mu      sync.RWMutex
	session *domain.Session
	access  string
	refresh string

	api         API
	store       Store
	board       *board.State
	logger      logger.Logger
	demoEnabled bool
	now         func() time.Time
}

// NewManager creates a session manager. The remote API is attached
// afterwards with SetAPI because the client needs the manager as its
// token source.
func NewManager(store Store, boardState *board.State, log logger.Logger, demoEnabled bool) *Manager {
	return &Manager{
		store:       store,
		board:       boardState,
		logger:      log,
		demoEnabled: demoEnabled,
		now:         time.Now,
	}
}

// SetAPI attaches the remote client once it exists.
func (m *Manager) SetAPI(api API) {
	m.api = api
}

// AccessToken implements remote.TokenSource.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.access
}

// Current returns a copy of the active session, nil when logged out.
func (m *Manager) Current() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.session == nil {
		return nil
	}
	copied := *m.session
	return &copied
}

// Login authenticates against the remote service. On success the
// tokens and session record are persisted durably before the
// opportunistic profile refresh runs.
//
// A reachable server's non-2xx is reported as ErrInvalidCredentials.
// Only a transport-level failure may fall back to the fixed demo
// credentials, and only when demo mode is enabled.
func (m *Manager) Login(ctx context.Context, email, password string, role domain.Role) error {
	res, err := m.api.Login(ctx, remote.Credentials{
		Email:    email,
		Password: password,
		Role:     string(role),
	})
	if err != nil {
		if remote.IsStatus(err) {
			return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		return m.demoLogin(ctx, email, password, role, err)
	}

	session := &domain.Session{
		Name:      domain.DisplayName(res.Name, res.FirstName, res.LastName, email),
		Email:     email,
		Role:      role,
		FirstName: res.FirstName,
		LastName:  res.LastName,
	}

	// Durable writes happen regardless of what the profile call does.
	if err := m.store.SaveTokens(ctx, res.Access, res.Refresh); err != nil {
		return fmt.Errorf("failed to persist tokens: %w", err)
	}
	if err := m.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.session = session
	m.access = res.Access
	m.refresh = res.Refresh
	m.mu.Unlock()

	m.logger.Info("login successful",
		logger.String("email", email),
		logger.String("role", string(role)))

	// Best effort: the session stays valid with its known data.
	if err := m.LoadProfile(ctx); err != nil {
		m.logger.Warn("profile refresh after login failed", logger.Error(err))
	}
	return nil
}

// demoLogin is the offline fallback for an unreachable server.
func (m *Manager) demoLogin(ctx context.Context, email, password string, role domain.Role, cause error) error {
	if !m.demoEnabled {
		return fmt.Errorf("login service unreachable: %w", cause)
	}

	acc, ok := findDemoAccount(email, password, role)
	if !ok {
		return fmt.Errorf("%w (offline, demo set checked)", ErrInvalidCredentials)
	}

	m.logger.Warn("remote unreachable, demo credentials accepted",
		logger.String("email", email),
		logger.Error(cause))

	session := &domain.Session{Name: acc.name, Email: acc.email, Role: acc.role}
	if err := m.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to persist demo session: %w", err)
	}

	m.mu.Lock()
	m.session = session
	m.access = ""
	m.refresh = ""
	m.mu.Unlock()
	return nil
}

// Signup registers a new account. The full name splits into first and
// last on the first space; accounts are keyed by email.
func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	first, last := splitName(name)

	res, err := m.api.Register(ctx, remote.Registration{
		FirstName: first,
		LastName:  last,
		Username:  email,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	session := &domain.Session{
		Name:      domain.DisplayName(name, res.FirstName, res.LastName, email),
		Email:     email,
		Role:      domain.RoleUser,
		FirstName: first,
		LastName:  last,
	}

	if res.Access != "" {
		if err := m.store.SaveTokens(ctx, res.Access, res.Refresh); err != nil {
			return fmt.Errorf("failed to persist tokens: %w", err)
		}
	}
	if err := m.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.session = session
	m.access = res.Access
	m.refresh = res.Refresh
	m.mu.Unlock()

	m.logger.Info("signup successful", logger.String("email", email))
	return nil
}

// Logout notifies the server best-effort, then clears session, tokens
// and all interaction/view state to defaults. The remote call never
// blocks or fails the local logout.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	refresh := m.refresh
	m.session = nil
	m.access = ""
	m.refresh = ""
	m.mu.Unlock()

	if refresh != "" {
		go func() {
			callCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := m.api.Logout(callCtx, refresh); err != nil {
				m.logger.Warn("server logout failed", logger.Error(err))
			}
		}()
	}

	if err := m.store.ClearSession(ctx); err != nil {
		m.logger.Error("failed to clear durable session", logger.Error(err))
	}

	m.board.ResetInteractions()
	if err := m.store.SaveBookmarkSet(ctx, nil); err != nil {
		m.logger.Error("failed to clear durable bookmarks", logger.Error(err))
	}

	m.logger.Info("logged out")
}

// LoadProfile refreshes display name, email and role from the server.
// Role derives from the staff flag. Non-fatal: on failure the session
// keeps its previously known data.
func (m *Manager) LoadProfile(ctx context.Context) error {
	profile, err := m.api.LoadProfile(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil
	}

	if profile.Email != "" {
		m.session.Email = profile.Email
	}
	m.session.Name = domain.DisplayName(profile.Name, profile.FirstName, profile.LastName, m.session.Email)
	m.session.FirstName = profile.FirstName
	m.session.LastName = profile.LastName
	if profile.IsStaff {
		m.session.Role = domain.RoleAdmin
	} else {
		m.session.Role = domain.RoleUser
	}
	return nil
}

// Restore loads session, tokens and the bookmark set from durable
// storage at startup. An expired access token drops the whole stored
// session rather than restoring one the server would reject.
func (m *Manager) Restore(ctx context.Context) error {
	access, refresh, err := m.store.LoadTokens(ctx)
	if err != nil {
		return err
	}
	session, err := m.store.LoadSession(ctx)
	if err != nil {
		return err
	}

	if access != "" && tokenExpired(access, m.now()) {
		m.logger.Info("stored access token expired, dropping saved session")
		if err := m.store.ClearSession(ctx); err != nil {
			m.logger.Warn("failed to clear expired session", logger.Error(err))
		}
		session, access, refresh = nil, "", ""
	}

	bookmarks, err := m.store.LoadBookmarkSet(ctx)
	if err != nil {
		m.logger.Warn("failed to restore bookmarks", logger.Error(err))
	} else {
		m.board.SetBookmarks(bookmarks)
	}

	m.mu.Lock()
	m.session = session
	m.access = access
	m.refresh = refresh
	m.mu.Unlock()

	if session != nil {
		m.logger.Info("session restored",
			logger.String("email", session.Email),
			logger.Int("bookmarks", len(bookmarks)))
	}
	return nil
}

// Invalidate drops the in-memory session only, forcing re-auth.
// Durable tokens stay so a later restore can try again; interaction
// state is untouched.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		m.logger.Warn("session invalidated, re-authentication required")
	}
	m.session = nil
}

// splitName splits a full name on the first space.
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}
