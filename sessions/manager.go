package sessions

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jrsteele09/school-portal/internal/errors"
	"github.com/jrsteele09/school-portal/storage"
)

// Manager reads and writes the session held in a storage.Store. It is the
// only component that touches the session keys; everything else is handed a
// Manager explicitly.
type Manager struct {
	store storage.Store
	mu    sync.Mutex
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// Token returns the stored access token. An empty value counts as absent.
func (m *Manager) Token(ctx context.Context) (string, bool, error) {
	token, ok, err := m.store.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		return "", false, errors.Wrapf(err, "[Session] reading access token")
	}
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (m *Manager) SaveToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Wrapf(m.store.Set(ctx, storage.KeyAccessToken, token), "[Session] saving access token")
}

// RemoveToken deletes the access token and the cached user. It is the teardown
// path for a session and is idempotent. The refresh token is left in place.
func (m *Manager) RemoveToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeToken(ctx)
}

func (m *Manager) removeToken(ctx context.Context) error {
	return errors.Wrapf(m.store.Remove(ctx, storage.KeyAccessToken, storage.KeyUser), "[Session] removing access token")
}

// TearDown removes the session if it still holds token and reports whether
// it did. A session replaced by a newer login is left alone, and concurrent
// callers holding the same token observe exactly one true result.
func (m *Manager) TearDown(ctx context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok, err := m.Token(ctx)
	if err != nil {
		return false, err
	}
	if !ok || current != token {
		return false, nil
	}
	if err := m.removeToken(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Save stores a freshly created session: access token, refresh token and user.
func (m *Manager) Save(ctx context.Context, s Session) error {
	if !s.Authenticated() {
		return errors.Wrapf(errors.ErrInvalidToken, "[Session] saving session without access token")
	}
	b, err := json.Marshal(s.User)
	if err != nil {
		return errors.Wrapf(err, "[Session] encoding user")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, storage.KeyAccessToken, s.AccessToken); err != nil {
		return errors.Wrapf(err, "[Session] saving access token")
	}
	if err := m.store.Set(ctx, storage.KeyRefreshToken, s.RefreshToken); err != nil {
		return errors.Wrapf(err, "[Session] saving refresh token")
	}
	if err := m.store.Set(ctx, storage.KeyUser, string(b)); err != nil {
		return errors.Wrapf(err, "[Session] saving user")
	}
	return nil
}

// Load returns the stored session, or ErrNotAuthenticated when there is no
// access token. A missing cached user is tolerated and left zero.
func (m *Manager) Load(ctx context.Context) (*Session, error) {
	token, ok, err := m.Token(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.ErrNotAuthenticated
	}

	s := &Session{AccessToken: token}
	if refresh, ok, err := m.store.Get(ctx, storage.KeyRefreshToken); err != nil {
		return nil, errors.Wrapf(err, "[Session] reading refresh token")
	} else if ok {
		s.RefreshToken = refresh
	}

	user, err := m.User(ctx)
	switch {
	case err == nil:
		s.User = *user
	case errors.Is(err, errors.ErrNotFound):
	default:
		return nil, err
	}
	return s, nil
}

// User returns the cached user profile.
func (m *Manager) User(ctx context.Context) (*User, error) {
	raw, ok, err := m.store.Get(ctx, storage.KeyUser)
	if err != nil {
		return nil, errors.Wrapf(err, "[Session] reading user")
	}
	if !ok || raw == "" {
		return nil, errors.Wrapf(errors.ErrNotFound, "[Session] cached user")
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, errors.Wrapf(errors.ErrSessionCorrupt, "[Session] decoding user: %v", err)
	}
	return &u, nil
}

// SaveUser replaces the cached user profile. Tokens are untouched.
func (m *Manager) SaveUser(ctx context.Context, u User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return errors.Wrapf(err, "[Session] encoding user")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Wrapf(m.store.Set(ctx, storage.KeyUser, string(b)), "[Session] saving user")
}

// Clear removes every session key, refresh token included.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.removeToken(ctx); err != nil {
		return err
	}
	return errors.Wrapf(m.store.Remove(ctx, storage.KeyRefreshToken), "[Session] removing refresh token")
}
