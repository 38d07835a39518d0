package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/furari-app/furari/internal/common"
)

// MinPasswordLength is the account password policy; shorter passwords are
// rejected before hashing.
const MinPasswordLength = 6

// HashPassword validates the policy and returns a bcrypt hash.
func HashPassword(password string) ([]byte, error) {
	if len(password) < MinPasswordLength {
		return nil, common.ErrWeakPassword
	}
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckPassword compares a stored hash against a candidate password.
// A mismatch returns common.ErrInvalidCredentials.
func CheckPassword(hash []byte, password string) error {
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return common.ErrInvalidCredentials
		}
		return err
	}
	return nil
}
