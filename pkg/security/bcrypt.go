package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost is the lowest work factor accepted for stored passwords.
const MinBcryptCost = 10

// ErrPasswordTooLong is returned when the password exceeds bcrypt's 72 byte
// input limit.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

type bcryptHasher struct {
	cost int
}

func newBcryptHasher(cost int) bcryptHasher {
	return bcryptHasher{cost: clampInt(cost, MinBcryptCost, bcrypt.MaxCost)}
}

func (h bcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

func (h bcryptHasher) Verify(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}

func isBcryptHash(encoded string) bool {
	if len(encoded) < 4 || encoded[0] != '$' || encoded[3] != '$' {
		return false
	}
	switch encoded[1:3] {
	case "2a", "2b", "2y":
		return true
	}
	return false
}
