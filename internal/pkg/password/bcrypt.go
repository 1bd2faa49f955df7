// Package password implements the PasswordHasher port on top of bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Akhilesh53/authcore/internal/core/domain"
)

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher clamps cost into bcrypt's valid range; zero selects the
// library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify runs bcrypt's constant-time comparison. A parse failure on the
// stored material means the record is damaged, not that the password is
// wrong, so it maps to ErrCorruptCredential.
func (h *BcryptHasher) Verify(plaintext, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domain.ErrInvalidCredentials
	default:
		return domain.ErrCorruptCredential
	}
}
