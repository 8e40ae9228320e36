package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saikambala25/goat/internal/users"
	pkgAuth "github.com/saikambala25/goat/pkg/auth"
	"github.com/saikambala25/goat/pkg/config"
	"github.com/saikambala25/goat/pkg/db/dbtest"
	"github.com/saikambala25/goat/pkg/db/models"
	pkgerrors "github.com/saikambala25/goat/pkg/errors"
	"github.com/saikambala25/goat/pkg/security"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "livestockmart"}

type testSetup struct {
	svc   Service
	repo  *users.Repository
	clock time.Time
}

func newTestSetup(t *testing.T) *testSetup {
	t.Helper()
	hasher, err := security.NewPasswordHasher(config.PasswordConfig{Algorithm: config.PasswordAlgorithmBcrypt, BcryptCost: security.MinBcryptCost})
	require.NoError(t, err)
	signer, err := pkgAuth.NewHMACSigner(testJWT)
	require.NoError(t, err)

	setup := &testSetup{
		repo:  users.NewRepository(dbtest.Open(t)),
		clock: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	setup.svc, err = NewService(ServiceParams{
		UserRepo: setup.repo,
		Hasher:   hasher,
		Signer:   signer,
		Now:      func() time.Time { return setup.clock },
	})
	require.NoError(t, err)
	return setup
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	s := newTestSetup(t)
	ctx := context.Background()

	user, err := s.svc.Register(ctx, RegisterRequest{Name: " Ravi ", Email: "  Ravi@Example.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", user.Name)
	assert.Equal(t, "ravi@example.com", user.Email)

	stored, err := s.repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "pw123456", stored.PasswordHash)
	assert.False(t, strings.Contains(stored.PasswordHash, "pw123456"))
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2a$"))
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	s := newTestSetup(t)
	ctx := context.Background()

	_, err := s.svc.Register(ctx, RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "pw123456"})
	require.NoError(t, err)

	_, err = s.svc.Register(ctx, RegisterRequest{Name: "Other", Email: "RAVI@EXAMPLE.COM", Password: "pw654321"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDuplicateEmail))
}

func TestRegisterValidation(t *testing.T) {
	s := newTestSetup(t)
	cases := []RegisterRequest{
		{Name: "R", Email: "r@example.com", Password: "pw123456"},
		{Name: "Ravi", Email: "not-an-email", Password: "pw123456"},
		{Name: "Ravi", Email: "r@example.com", Password: "short"},
		{},
	}
	for _, req := range cases {
		_, err := s.svc.Register(context.Background(), req)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "%+v: %v", req, err)
	}

	var count int64
	require.NoError(t, s.repo.DB(context.Background()).Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAuthenticate(t *testing.T) {
	s := newTestSetup(t)
	ctx := context.Background()

	registered, err := s.svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "pw123456"})
	require.NoError(t, err)

	user, err := s.svc.Authenticate(ctx, LoginRequest{Email: " ASHA@example.com ", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, registered, user)

	_, wrongPassword := s.svc.Authenticate(ctx, LoginRequest{Email: "asha@example.com", Password: "nope-nope"})
	_, unknownEmail := s.svc.Authenticate(ctx, LoginRequest{Email: "ghost@example.com", Password: "pw123456"})
	for _, err := range []error{wrongPassword, unknownEmail} {
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeInvalidCredentials, typed.Code())
		assert.Equal(t, invalidCredentialsMessage, typed.Message())
	}
}

func TestAuthenticateMalformedStoredHashIsInternal(t *testing.T) {
	s := newTestSetup(t)
	ctx := context.Background()

	_, err := s.repo.Create(ctx, users.CreateUserDTO{Name: "Broken", Email: "broken@example.com", PasswordHash: "plaintext"})
	require.NoError(t, err)

	_, err = s.svc.Authenticate(ctx, LoginRequest{Email: "broken@example.com", Password: "whatever"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
}

func TestGetByID(t *testing.T) {
	s := newTestSetup(t)
	ctx := context.Background()

	registered, err := s.svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "pw123456"})
	require.NoError(t, err)

	got, err := s.svc.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered, got)

	_, err = s.svc.GetByID(ctx, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestIssueSession(t *testing.T) {
	s := newTestSetup(t)
	userID := uuid.New()

	session, err := s.svc.IssueSession(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, s.clock.Add(pkgAuth.SessionTTL), session.ExpiresAt)

	claims, err := pkgAuth.ParseSessionToken(testJWT, session.Token, s.clock.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, s.clock.Unix(), claims.IssuedAt.Unix())
}

func TestRegisterPasswordByteLimit(t *testing.T) {
	s := newTestSetup(t)
	ctx := context.Background()

	for _, password := range []string{strings.Repeat("a", 73), strings.Repeat("a", 80)} {
		_, err := s.svc.Register(ctx, RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: password})
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "len %d", len(password))
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		details, ok := typed.Details().(map[string]string)
		require.True(t, ok)
		assert.Contains(t, details, "password")
	}

	var count int64
	require.NoError(t, s.repo.DB(ctx).Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)

	longest := strings.Repeat("a", 72)
	registered, err := s.svc.Register(ctx, RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: longest})
	require.NoError(t, err)
	user, err := s.svc.Authenticate(ctx, LoginRequest{Email: "ravi@example.com", Password: longest})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

type tooLongHasher struct{}

func (tooLongHasher) Hash(string) (string, error) {
	return "", security.ErrPasswordTooLong
}

func (tooLongHasher) Verify(string, string) (bool, error) {
	return false, nil
}

func TestRegisterHasherLengthErrorIsValidation(t *testing.T) {
	signer, err := pkgAuth.NewHMACSigner(testJWT)
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{
		UserRepo: users.NewRepository(dbtest.Open(t)),
		Hasher:   tooLongHasher{},
		Signer:   signer,
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "pw123456"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "%v", err)
}
