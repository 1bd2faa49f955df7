package ports

import (
	"context"

	"github.com/Akhilesh53/authcore/internal/core/domain"
)

type AuthService interface {
	// Register creates an account and returns the new user ID. No session is
	// established; the caller must log in explicitly.
	Register(ctx context.Context, email, password, displayName string) (string, error)

	// Login verifies credentials and returns a session token.
	Login(ctx context.Context, email, password string) (string, error)

	// Logout destroys the session. Idempotent; never fails on an unknown token.
	Logout(ctx context.Context, sessionToken string) error

	// ChangePassword replaces the password of the authenticated caller.
	// currentPassword is verified only when the service is configured to
	// require it.
	ChangePassword(ctx context.Context, sessionToken, currentPassword, newPassword string) error

	// RequestReset starts the self-service recovery flow. Unknown emails
	// produce the same nil outcome as known ones.
	RequestReset(ctx context.Context, email string) error

	// CompleteReset consumes a reset token, replaces the password, and returns
	// a session token for the now-authenticated user.
	CompleteReset(ctx context.Context, token, newPassword, confirmPassword string) (string, error)

	// CurrentUser resolves the session and loads its user record.
	CurrentUser(ctx context.Context, sessionToken string) (*domain.User, error)
}
