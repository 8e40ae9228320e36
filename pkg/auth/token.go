package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/saikambala25/goat/pkg/config"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 7 * 24 * time.Hour

var jwtSigningMethod = jwt.SigningMethodHS256

// ErrInvalidToken is returned for any token that is missing, malformed,
// tampered with, expired, or issued by someone else.
var ErrInvalidToken = errors.New("invalid session token")

// TokenSigner mints and verifies session tokens.
type TokenSigner interface {
	Sign(now time.Time, userID uuid.UUID) (token string, expiresAt time.Time, err error)
	Verify(token string) (*SessionClaims, error)
}

// HMACSigner signs session tokens with a shared HS256 secret.
type HMACSigner struct {
	cfg config.JWTConfig
	now func() time.Time
}

func NewHMACSigner(cfg config.JWTConfig) (*HMACSigner, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if strings.TrimSpace(cfg.Issuer) == "" {
		return nil, fmt.Errorf("jwt issuer is required")
	}
	return &HMACSigner{cfg: cfg, now: time.Now}, nil
}

func (s *HMACSigner) Sign(now time.Time, userID uuid.UUID) (string, time.Time, error) {
	token, err := MintSessionToken(s.cfg, now, userID)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, now.Add(SessionTTL), nil
}

func (s *HMACSigner) Verify(token string) (*SessionClaims, error) {
	return ParseSessionToken(s.cfg, token, s.now())
}

// MintSessionToken issues a signed JWT for userID valid for SessionTTL.
func MintSessionToken(cfg config.JWTConfig, now time.Time, userID uuid.UUID) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if userID == uuid.Nil {
		return "", fmt.Errorf("user id is required")
	}

	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates the JWT string against now and returns typed
// claims. Every failure collapses into ErrInvalidToken.
func ParseSessionToken(cfg config.JWTConfig, tokenString string, now time.Time) (*SessionClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
