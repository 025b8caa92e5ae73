package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fznajm/ngobrol-auth/internal/apperrors"
)

// Bcrypt password hasher
// Will be used as default one if caller not provide its own
//
// Passwords are pre-hashed with sha256 to dodge the bcrypt 72 byte input
// limit, then run through bcrypt which salts the digest itself. Hashing the
// same password twice always yields different digests
type BcryptHasher struct{}

func (h BcryptHasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	hash, err := bcrypt.GenerateFromPassword(sum[:], bcrypt.DefaultCost)
	return string(hash), err
}

// Compare known hashedPassword and user provided password
// Returns apperrors.ErrCorruptHash when the stored digest itself can't be
// parsed, a plain mismatch error otherwise
func (h BcryptHasher) Compare(hashedPassword string, password string) error {
	sum := sha256.Sum256([]byte(password))
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), sum[:])

	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return err
	default:
		return fmt.Errorf("%w: %w", apperrors.ErrCorruptHash, err)
	}
}
