package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gowtham404/bookstore-auth-go/authapi"
	"github.com/gowtham404/bookstore-auth-go/claims"
)

// Gateway is the slice of the user API the manager needs. *authapi.Client
// satisfies it.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*authapi.LoginResult, error)
	RenewAccessToken(ctx context.Context, refreshToken string) (*authapi.TokenRenewal, error)
	Logout(ctx context.Context, accessToken string) (*authapi.Ack, error)
}

// Manager owns the session lifecycle: it reads and writes the store, judges
// expiry through the claims codec and talks to the gateway to renew or
// terminate. All store mutation is serialized through the manager, so a
// logout always beats a renewal that completes after it.
type Manager struct {
	mu    sync.Mutex
	api   Gateway
	store Store
	now   func() time.Time
}

type ManagerOption func(*Manager)

// WithNowFunc overrides the clock, primarily for tests.
func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(api Gateway, store Store, options ...ManagerOption) (*Manager, error) {
	if api == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}

	manager := &Manager{
		api:   api,
		store: store,
		now:   time.Now,
	}

	for _, option := range options {
		option(manager)
	}

	return manager, nil
}

// Login exchanges credentials for a session and persists it. When the
// account is unverified the server returns no tokens; that surfaces as
// ErrVerificationRequired and nothing is stored. Gateway failures propagate
// unchanged so their server detail can be shown to the user.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if !result.Verified {
		return nil, fmt.Errorf("%w: %s", ErrVerificationRequired, result.Message)
	}

	session := &Session{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(session); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	slog.Debug("session established", "user", session.User.Email)
	return session, nil
}

// Current returns the stored session, or nil when absent. Pure local read;
// it does not judge expiry, callers combine it with IsExpired.
func (m *Manager) Current() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Load()
}

// IsExpired reports whether the session's access token has expired. A token
// that cannot be decoded counts as expired.
func (m *Manager) IsExpired(session *Session) bool {
	if session == nil {
		return true
	}
	return claims.Expired(session.AccessToken, m.now())
}

// Refresh renews the access token using the session's refresh token. On
// success only the access token field of the stored record changes. On
// failure the store is untouched and the error wraps both ErrRefreshFailed
// and the gateway cause; the session is deliberately not cleared, the
// caller decides whether to force a logout. If the session was cleared
// while the renewal was in flight, the result is discarded and
// ErrSessionCleared returned.
func (m *Manager) Refresh(ctx context.Context, session *Session) (*Session, error) {
	if session == nil {
		var err error
		session, err = m.Current()
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrNoSession
		}
	}

	renewal, err := m.api.RenewAccessToken(ctx, session.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check under the lock: a logout that raced the renewal must stay
	// the final observable state.
	current, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if current == nil {
		slog.Debug("discarding renewal result, session is gone")
		return nil, ErrSessionCleared
	}

	updated := current.clone()
	updated.AccessToken = renewal.AccessToken
	if err := m.store.Save(updated); err != nil {
		return nil, fmt.Errorf("persisting renewed session: %w", err)
	}

	slog.Debug("access token renewed", "user", updated.User.Email)
	return updated, nil
}

// Logout terminates the session. The server call is best effort; the local
// record is cleared regardless of network outcome, and Logout returns once
// that clear has completed.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	current, err := m.store.Load()
	m.mu.Unlock()
	if err != nil {
		return err
	}

	if current != nil {
		if _, err := m.api.Logout(ctx, current.AccessToken); err != nil {
			slog.Warn("server logout failed, clearing local session anyway", "error", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	slog.Debug("session cleared")
	return nil
}
