package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Akhilesh53/authcore/internal/core/domain"
	"github.com/Akhilesh53/authcore/internal/pkg/token"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore implements the SessionManager port on Redis.
// Key format: session:<token> → user ID, expiring with the session TTL so
// stale sessions vanish without a sweeper.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, userID string) (string, error) {
	tok, err := token.NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.key(tok), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return tok, nil
}

func (s *SessionStore) Destroy(ctx context.Context, tok string) error {
	if err := s.client.Del(ctx, s.key(tok)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionStore) Resolve(ctx context.Context, tok string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(tok)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotAuthenticated
		}
		return "", fmt.Errorf("resolve session: %w", err)
	}
	return userID, nil
}

func (s *SessionStore) key(tok string) string {
	return "session:" + tok
}
