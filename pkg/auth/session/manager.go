package session

import (
	"context"
	"fmt"
	"time"

	"github.com/cargodesk/cargodesk-backend/pkg/redis"
)

// Store is the subset of the redis client the session manager needs.
type Store interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, key string) error
}

// Manager tracks active operator sessions in redis, keyed by token jti.
// Revoking the session invalidates the token before its jwt expiry.
type Manager struct {
	store Store
	ttl   time.Duration
}

// New builds a session manager with the given store and session lifetime.
func New(store Store, ttl time.Duration) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: store, ttl: ttl}, nil
}

// Create registers a session for the jti, bound to the operator id.
func (m *Manager) Create(ctx context.Context, jti string, userID string) error {
	if jti == "" {
		return fmt.Errorf("session id is required")
	}
	if err := m.store.Set(ctx, redis.SessionKey(jti), userID, m.ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// HasSession reports whether the jti still maps to a live session.
func (m *Manager) HasSession(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, ok, err := m.store.Get(ctx, redis.SessionKey(jti))
	if err != nil {
		return false, fmt.Errorf("lookup session: %w", err)
	}
	return ok, nil
}

// Revoke removes the session for the jti. Missing sessions are a no-op.
func (m *Manager) Revoke(ctx context.Context, jti string) error {
	if jti == "" {
		return nil
	}
	if err := m.store.Del(ctx, redis.SessionKey(jti)); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
