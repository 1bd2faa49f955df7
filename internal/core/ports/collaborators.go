package ports

import "context"

// PasswordHasher is a one-way salted hash capability. Two Hash calls with the
// same input produce different outputs, both accepted by Verify.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify returns nil on a match, domain.ErrInvalidCredentials on a
	// mismatch, and domain.ErrCorruptCredential when the stored material
	// cannot be parsed.
	Verify(plaintext, hash string) error
}

// Notifier delivers a single templated message to an address.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SessionManager maps opaque bearer tokens to authenticated user IDs.
type SessionManager interface {
	// Create issues a new token bound to userID.
	Create(ctx context.Context, userID string) (string, error)
	// Destroy invalidates a token. Unknown tokens are a no-op, not an error.
	Destroy(ctx context.Context, token string) error
	// Resolve returns the user ID bound to token, or
	// domain.ErrNotAuthenticated when the token is unknown or expired.
	Resolve(ctx context.Context, token string) (string, error)
}
