// Package memory provides in-process implementations of the persistence
// ports. They back tests and local development; the production wiring uses
// the mongo and redis packages.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Akhilesh53/authcore/internal/core/domain"
)

// UserRepository keeps credential records in a mutex-guarded map, honoring
// the same atomicity contract as the Mongo implementation: uniqueness is
// checked under the lock, and ConsumeResetToken is a single critical section.
type UserRepository struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}

	stored := *user
	stored.ID = uuid.NewString()
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	clone := stored
	return &clone, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *UserRepository) FindByResetToken(_ context.Context, token string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByLiveToken(token, now)
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) SetResetToken(_ context.Context, userID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.ResetToken = token
	user.ResetTokenExpiresAt = expiresAt
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) ConsumeResetToken(_ context.Context, token string, now time.Time, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByLiveToken(token, now)
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	user.PasswordHash = passwordHash
	user.ResetToken = ""
	user.ResetTokenExpiresAt = time.Time{}
	user.UpdatedAt = now

	clone := *user
	return &clone, nil
}

// findByLiveToken must be called with the lock held.
func (r *UserRepository) findByLiveToken(token string, now time.Time) *domain.User {
	if token == "" {
		return nil
	}
	for _, user := range r.byID {
		if user.ResetToken == token && user.ResetTokenExpiresAt.After(now) {
			return user
		}
	}
	return nil
}
