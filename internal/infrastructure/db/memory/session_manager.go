package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Akhilesh53/authcore/internal/core/domain"
	"github.com/Akhilesh53/authcore/internal/pkg/token"
)

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

// SessionManager is an in-process session store with the same semantics as
// the redis-backed one.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	ttl      time.Duration
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{
		sessions: make(map[string]sessionEntry),
		ttl:      ttl,
	}
}

func (m *SessionManager) Create(_ context.Context, userID string) (string, error) {
	tok, err := token.NewSessionToken()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.sessions[tok] = sessionEntry{userID: userID, expiresAt: time.Now().Add(m.ttl)}
	m.mu.Unlock()
	return tok, nil
}

func (m *SessionManager) Destroy(_ context.Context, tok string) error {
	m.mu.Lock()
	delete(m.sessions, tok)
	m.mu.Unlock()
	return nil
}

func (m *SessionManager) Resolve(_ context.Context, tok string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[tok]
	if !ok {
		return "", domain.ErrNotAuthenticated
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.sessions, tok)
		return "", domain.ErrNotAuthenticated
	}
	return entry.userID, nil
}
