package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier checks login attempts against stored password hashes.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword and
	// ErrPasswordMismatch when it does not.
	Compare(hashedPassword, password string) error

	// CompareMissing does the work of a failed Compare for a login whose
	// email matched no user, so both failures take about as long.
	CompareMissing(password string)
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

var _ PasswordVerifier = (*BcryptVerifier)(nil)

// missingUserHash is generated once at the default cost used for real users.
var missingUserHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("no such user"), bcrypt.DefaultCost)
	if err != nil {
		return nil
	}
	return hash
})

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements PasswordVerifier.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("%w: %w", ErrPasswordMismatch, err)
	}
}

// CompareMissing implements PasswordVerifier.
func (v *BcryptVerifier) CompareMissing(password string) {
	_ = bcrypt.CompareHashAndPassword(missingUserHash(), []byte(password))
}
