package domain

import "time"

// User is the durable credential record for a single account.
//
// PasswordHash is opaque bcrypt material and is never serialized to
// untrusted output. ResetToken and ResetTokenExpiresAt are set and cleared
// together: both zero when no reset is pending, both populated while one is.
type User struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	DisplayName         string    `json:"display_name,omitempty"`
	PasswordHash        string    `json:"-"`
	ResetToken          string    `json:"-"`
	ResetTokenExpiresAt time.Time `json:"-"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ResetPending reports whether a password reset is currently in flight.
func (u *User) ResetPending() bool {
	return u.ResetToken != "" && !u.ResetTokenExpiresAt.IsZero()
}
