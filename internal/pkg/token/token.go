// Package token generates the opaque random credentials used for password
// resets and sessions. Generation failure is fatal to the operation that
// needed the token; callers must never proceed with a weak substitute.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const (
	resetTokenBytes   = 20 // 160 bits, hex-encoded
	sessionTokenBytes = 32 // 256 bits, base64url-encoded
)

// NewResetToken returns a 40-character hex token.
func NewResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewSessionToken returns a 43-character base64url token.
func NewSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
