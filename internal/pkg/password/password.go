// Package password wraps bcrypt behind a pair of helpers so the cost
// factor and error mapping live in one place.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed    = errors.New("password hashing failed")
	ErrComparisonFailed = errors.New("password comparison failed")
	ErrInvalidPassword  = errors.New("invalid password")
)

const DefaultCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash for storage. Empty passwords are
// rejected before hashing.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hash), nil
}

// ComparePassword checks plain against a stored hash. A mismatch comes
// back as ErrComparisonFailed so callers never branch on bcrypt errors
// directly.
func ComparePassword(hash, plain string) error {
	if hash == "" || plain == "" {
		return ErrInvalidPassword
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrComparisonFailed
	default:
		return err
	}
}
