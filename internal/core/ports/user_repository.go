package ports

import (
	"context"
	"time"

	"github.com/Akhilesh53/authcore/internal/core/domain"
)

// UserRepository defines the interface for durable credential persistence.
//
// Implementations must enforce email uniqueness at the store level (a
// constraint, not a check-then-insert) and must make ConsumeResetToken a
// single atomic write: two concurrent completions racing on the same token
// see exactly one success.
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned ID.
	// Fails with domain.ErrDuplicateEmail on an email conflict.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID returns domain.ErrUserNotFound when no account matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByResetToken matches only tokens whose expiry is strictly after now.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)

	// UpdatePassword replaces the stored hash for the given user. The old hash
	// stays intact unless the write succeeds.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// SetResetToken stores the token and its expiry in one write.
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error

	// ConsumeResetToken atomically swaps the password hash and clears both
	// reset fields on the user holding a live token. Returns
	// domain.ErrUserNotFound when the token is unknown, expired, or already
	// consumed.
	ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*domain.User, error)
}
