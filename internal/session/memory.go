package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/propdesk/tenantpipe/internal/models"
)

// MemoryStore is a mutex-guarded in-memory session store. Sessions live
// only for the process lifetime; reads and writes go through deep copies so
// a caller can never mutate stored state except via Update.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.Session)}
}

// GetOrCreate returns the session for the given ID, creating one if needed.
func (m *MemoryStore) GetOrCreate(ctx context.Context, sessionID, userID string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		return s.Clone(), nil
	}
	s := models.NewSession(sessionID, userID)
	m.sessions[sessionID] = s
	slog.Debug("MemoryStore.GetOrCreate: created session", "sessionID", sessionID, "userID_set", userID != "")
	return s.Clone(), nil
}

// Get returns the session for the given ID, or nil when none exists.
func (m *MemoryStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

// Update persists the session and refreshes its UpdatedAt timestamp.
func (m *MemoryStore) Update(ctx context.Context, s *models.Session) error {
	cp := s.Clone()
	cp.UpdatedAt = time.Now().UTC()
	s.UpdatedAt = cp.UpdatedAt
	m.mu.Lock()
	m.sessions[cp.ID] = cp
	m.mu.Unlock()
	slog.Debug("MemoryStore.Update: session saved", "sessionID", cp.ID, "state", cp.CurrentState)
	return nil
}

// Sweep removes sessions whose last update is older than maxAge.
func (m *MemoryStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		slog.Info("MemoryStore.Sweep: removed stale sessions", "removed", removed, "maxAge", maxAge)
	}
	return removed, nil
}

// List returns all sessions.
func (m *MemoryStore) List(ctx context.Context) ([]*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Clone())
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
