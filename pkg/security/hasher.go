package security

import (
	"fmt"
	"strings"

	"github.com/saikambala25/goat/pkg/config"
)

// PasswordHasher hashes new passwords and checks candidates against stored
// hashes. Implementations never retain the plaintext.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// NewPasswordHasher returns a hasher that writes with the configured
// algorithm and verifies hashes from either supported algorithm, so the
// setting can change without invalidating existing accounts.
func NewPasswordHasher(cfg config.PasswordConfig) (PasswordHasher, error) {
	bc := newBcryptHasher(cfg.BcryptCost)
	argon := argon2idHasher{cfg: cfg}

	var primary PasswordHasher
	switch strings.ToLower(strings.TrimSpace(cfg.Algorithm)) {
	case "", config.PasswordAlgorithmBcrypt:
		primary = bc
	case config.PasswordAlgorithmArgon2id:
		primary = argon
	default:
		return nil, fmt.Errorf("unsupported password algorithm %q", cfg.Algorithm)
	}
	return &multiHasher{primary: primary, bcrypt: bc, argon: argon}, nil
}

type multiHasher struct {
	primary PasswordHasher
	bcrypt  bcryptHasher
	argon   argon2idHasher
}

func (m *multiHasher) Hash(password string) (string, error) {
	return m.primary.Hash(password)
}

func (m *multiHasher) Verify(password, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, argon2idPrefix):
		return m.argon.Verify(password, encoded)
	case isBcryptHash(encoded):
		return m.bcrypt.Verify(password, encoded)
	default:
		return false, ErrInvalidHash
	}
}
