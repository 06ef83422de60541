package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch reports a wrong password. Any other error from
// ComparePassword means the stored hash could not be processed at all.
var ErrPasswordMismatch = errors.New("password mismatch")

const defaultBcryptCost = 12

// HashPassword hashes a plaintext password with the configured cost. The salt
// is embedded in the bcrypt output.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = defaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value. A mismatch
// returns ErrPasswordMismatch; a corrupt or truncated hash returns a wrapped
// internal error so callers can keep the two cases apart in logs.
func ComparePassword(hashed, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("compare password: %w", err)
}
