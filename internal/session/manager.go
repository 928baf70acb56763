// Package session owns the marketplace auth data: it caches it, persists it
// and refreshes it on demand.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"GiftChart/internal/model"
)

// Manager hands out auth data with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *model.SessionState
	filePath string
	source   TokenSource
	ttl      time.Duration
	group    singleflight.Group
	now      func() time.Time
}

// NewManager creates a Manager, loading any saved state from disk. A ttl of
// zero keeps auth data until it is invalidated.
func NewManager(filePath string, source TokenSource, ttl time.Duration) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	return &Manager{
		state:    state,
		filePath: filePath,
		source:   source,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// State returns a copy of the current session state.
func (m *Manager) State() model.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}

// Token returns cached auth data, refreshing it first if missing or expired.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	if m.state.Valid(m.now()) {
		token := m.state.AuthData
		m.mu.Unlock()
		return token, nil
	}
	m.mu.Unlock()
	return m.Refresh(ctx)
}

// Refresh fetches new auth data from the source. Concurrent callers share a
// single fetch.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	ch := m.group.DoChan("refresh", func() (any, error) {
		token, err := m.source.Fetch(context.WithoutCancel(ctx))
		if err != nil {
			return "", err
		}
		m.store(token)
		return token, nil
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", fmt.Errorf("refresh session: %w", res.Err)
		}
		return res.Val.(string), nil
	}
}

// Invalidate drops the cached auth data so the next Token call refreshes.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.AuthData == "" {
		return
	}
	log.Printf("[WARN] marketplace session rejected, invalidating")
	m.state.AuthData = ""
	m.state.ExpiresAt = time.Time{}
	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save session state: %v", err)
	}
}

func (m *Manager) store(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.state.AuthData = token
	m.state.ObtainedAt = now
	m.state.ExpiresAt = time.Time{}
	if m.ttl > 0 {
		m.state.ExpiresAt = now.Add(m.ttl)
	}
	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save session state: %v", err)
	}
	log.Printf("[INFO] marketplace session refreshed")
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
