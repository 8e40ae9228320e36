package auth

import (
	"time"

	"github.com/saikambala25/goat/internal/users"
	"github.com/saikambala25/goat/pkg/validation"
)

const (
	minNameLength     = 2
	minPasswordLength = 6

	// bcrypt rejects longer input. The cap holds for every algorithm.
	maxPasswordBytes = 72
)

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	var res validation.Result
	if res.Required("name", r.Name) {
		res.MinLength("name", r.Name, minNameLength)
	}
	if res.Required("email", r.Email) {
		res.Email("email", r.Email)
	}
	if res.Required("password", r.Password) && res.MinLength("password", r.Password, minPasswordLength) {
		res.MaxBytes("password", r.Password, maxPasswordBytes)
	}
	return res.Err()
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var res validation.Result
	res.Required("email", r.Email)
	res.Required("password", r.Password)
	return res.Err()
}

// UserResponse wraps the public user shape returned by every auth endpoint.
type UserResponse struct {
	User *users.UserDTO `json:"user"`
}

// Session is a freshly minted token and the instant it stops being valid.
type Session struct {
	Token     string
	ExpiresAt time.Time
}
