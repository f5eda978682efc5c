// internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhub/souq-backend/internal/config"
	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store/fixture"
)

func newAuthService() *AuthService {
	return NewAuthService(
		fixture.New(0),
		config.AuthConfig{MaxLoginAttempts: 5, LockoutMinutes: 15},
		config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 24, RefreshTokenTTL: 168, RememberMeTTL: 720},
		5*time.Second,
	)
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		Username: "new_seller",
		Email:    "seller@example.com",
		Password: "Strong1Pass",
		Phone:    "0599000111",
		City:     "الخليل",
		Region:   models.RegionHebron,
	}
}

func TestRegisterCreatesMember(t *testing.T) {
	svc := newAuthService()

	user, tokens, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.Equal(t, models.UserTypeMember, user.UserType)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "Strong1Pass", user.PasswordHash)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	// Email already used by a fixture user.
	req := validRegisterRequest()
	req.Email = "ahmad@example.com"
	_, _, err := svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrValidation)

	// Username already taken.
	req = validRegisterRequest()
	req.Username = "ahmad_k"
	_, _, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := newAuthService()

	req := validRegisterRequest()
	req.Password = "short"
	_, _, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginByEmailAndUsername(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	user, tokens, err := svc.Login(ctx, &LoginRequest{Identifier: "ahmad@example.com", Password: fixture.DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, fixture.UserAhmadID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)

	user, _, err = svc.Login(ctx, &LoginRequest{Identifier: "ahmad_k", Password: fixture.DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, fixture.UserAhmadID, user.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService()

	_, _, err := svc.Login(context.Background(), &LoginRequest{Identifier: "ahmad@example.com", Password: "WrongPass1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login(ctx, &LoginRequest{Identifier: "ahmad@example.com", Password: "WrongPass1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// The correct password is rejected while the lock holds.
	_, _, err := svc.Login(ctx, &LoginRequest{Identifier: "ahmad@example.com", Password: fixture.DemoPassword})
	assert.ErrorIs(t, err, ErrAccountLocked)

	// Other accounts are unaffected.
	_, _, err = svc.Login(ctx, &LoginRequest{Identifier: "layla@example.com", Password: fixture.DemoPassword})
	assert.NoError(t, err)
}

func TestLoginSuccessClearsFailureCount(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		svc.Login(ctx, &LoginRequest{Identifier: "ahmad@example.com", Password: "WrongPass1"})
	}

	_, _, err := svc.Login(ctx, &LoginRequest{Identifier: "ahmad@example.com", Password: fixture.DemoPassword})
	require.NoError(t, err)

	// The slate is clean: more failures are needed before a lock.
	_, _, err = svc.Login(ctx, &LoginRequest{Identifier: "ahmad@example.com", Password: "WrongPass1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, &LoginRequest{Identifier: "ahmad@example.com", Password: fixture.DemoPassword})
	assert.NoError(t, err)
}

func TestLoginUnknownIdentifierBurnsAttempts(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login(ctx, &LoginRequest{Identifier: "nobody@example.com", Password: "WrongPass1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, _, err := svc.Login(ctx, &LoginRequest{Identifier: "nobody@example.com", Password: "WrongPass1"})
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestRefreshIssuesNewTokens(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, tokens, err := svc.Login(ctx, &LoginRequest{Identifier: "ahmad@example.com", Password: fixture.DemoPassword})
	require.NoError(t, err)

	user, fresh, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, fixture.UserAhmadID, user.ID)
	assert.NotEmpty(t, fresh.AccessToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newAuthService()

	_, _, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
