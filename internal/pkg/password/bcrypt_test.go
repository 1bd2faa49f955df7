package password

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Akhilesh53/authcore/internal/core/domain"
)

func TestHashIsSaltedAndVerifiable(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same input must differ (salt)")
	}

	if err := h.Verify("correct horse", first); err != nil {
		t.Fatalf("first hash rejected: %v", err)
	}
	if err := h.Verify("correct horse", second); err != nil {
		t.Fatalf("second hash rejected: %v", err)
	}
}

func TestVerifyMismatch(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, _ := h.Hash("right password")
	if err := h.Verify("wrong password", hash); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyCorruptHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, corrupt := range []string{"", "not-a-bcrypt-hash", "$2a$"} {
		if err := h.Verify("anything", corrupt); !errors.Is(err, domain.ErrCorruptCredential) {
			t.Fatalf("hash %q: expected ErrCorruptCredential, got %v", corrupt, err)
		}
	}
}

func TestCostClamping(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default instead of failing
	// at hash time.
	for _, cost := range []int{-1, 0, 99} {
		h := NewBcryptHasher(cost)
		if h.cost != bcrypt.DefaultCost {
			t.Fatalf("cost %d: expected default %d, got %d", cost, bcrypt.DefaultCost, h.cost)
		}
	}
}
