package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input that fails shape checks (bad email, short password).
	ErrValidation = errors.New("invalid input")
	// ErrDuplicateEmail is returned by the store when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// two are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated is returned by protected operations when the caller
	// holds no resolvable session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidOrExpiredToken covers both a token that was never issued and one
	// past its window.
	ErrInvalidOrExpiredToken = errors.New("password reset token is invalid or has expired")
	// ErrPasswordMismatch is returned when the confirmation repeat does not
	// match the new password.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrCorruptCredential marks stored hash material that cannot be parsed.
	ErrCorruptCredential = errors.New("corrupt stored credential")
	// ErrDependencyFailure wraps store, hasher, and notifier infrastructure
	// failures. The underlying cause is logged, never surfaced to end users.
	ErrDependencyFailure = errors.New("dependency failure")

	// ErrUserNotFound is internal to the store contract; services translate it
	// before it reaches a caller.
	ErrUserNotFound = errors.New("user not found")
)

// DependencyFailure wraps err so that errors.Is matches ErrDependencyFailure
// while the original cause remains in the chain for logging.
func DependencyFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyFailure, op, err)
}
