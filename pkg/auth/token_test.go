package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/saikambala25/goat/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "livestockmart"}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()
	userID := uuid.New()

	token, err := MintSessionToken(cfg, now, userID)
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected uid %s, got %s", userID, claims.UserID)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected jti to be set")
	}

	exp := now.Add(SessionTTL)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v", exp, claims.ExpiresAt.Time)
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()

	token, err := MintSessionToken(cfg, now, uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	_, err = ParseSessionToken(cfg, token, now.Add(SessionTTL+time.Minute))
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseSessionTokenInvalidSignature(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	token, err := MintSessionToken(cfg, now, uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseSessionToken(other, token, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected signature failure, got %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := ParseSessionToken(cfg, tampered, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected tampered payload to fail, got %v", err)
	}
}

func TestParseSessionTokenRejectsOtherAlgorithms(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()
	claims := SessionClaims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := ParseSessionToken(cfg, unsigned, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected alg none to be rejected, got %v", err)
	}
}

func TestParseSessionTokenRejectsWrongIssuerAndGarbage(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	other := cfg
	other.Issuer = "someone-else"
	token, err := MintSessionToken(other, now, uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected issuer mismatch to fail, got %v", err)
	}

	for _, raw := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		if _, err := ParseSessionToken(cfg, raw, now); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected %q to be invalid, got %v", raw, err)
		}
	}
}

func TestHMACSigner(t *testing.T) {
	if _, err := NewHMACSigner(config.JWTConfig{Issuer: "x"}); err == nil {
		t.Fatal("expected error without secret")
	}

	signer, err := NewHMACSigner(testJWTConfig())
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	now := time.Now()
	userID := uuid.New()
	token, expiresAt, err := signer.Sign(now, userID)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !expiresAt.Equal(now.Add(SessionTTL)) {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}
	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("unexpected uid %s", claims.UserID)
	}

	signer.now = func() time.Time { return now.Add(SessionTTL + time.Second) }
	if _, err := signer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestSessionCookieHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "abc", time.Now().Add(SessionTTL), true)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookieName || c.Value != "abc" {
		t.Fatalf("unexpected cookie %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Fatalf("unexpected cookie attributes %+v", c)
	}
	if c.MaxAge != int(SessionTTL.Seconds()) {
		t.Fatalf("unexpected max age %d", c.MaxAge)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
	if got := SessionTokenFromRequest(req); got != "abc" {
		t.Fatalf("expected token abc, got %q", got)
	}
	if got := SessionTokenFromRequest(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec, false)
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 || cleared[0].Value != "" {
		t.Fatalf("expected expired cookie, got %+v", cleared)
	}
}
