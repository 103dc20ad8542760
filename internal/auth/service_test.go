package auth

import (
	"context"
	"testing"
	"time"

	"family-tasks/internal/errors"
	"family-tasks/internal/gateway/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	gw, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })

	tokens := NewJWTManager("test-secret", time.Hour)
	return NewService(gw, tokens, NewPasswordHasher(4))
}

func TestService_RegisterAndLogin(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	profile, token, err := service.Register(ctx, "Family@Example.com", "secret1", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "family@example.com", profile.Email)
	assert.NotEmpty(t, token)

	loggedIn, loginToken, err := service.Login(ctx, "family@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestService_Register_Validation(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "rejects missing at sign", email: "not-an-email", password: "secret1"},
		{name: "rejects empty email", email: "", password: "secret1"},
		{name: "rejects short password", email: "a@b.com", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Register(ctx, tt.email, tt.password, nil)
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
		})
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	_, _, err := service.Register(ctx, "a@b.com", "secret1", nil)
	require.NoError(t, err)

	_, _, err = service.Register(ctx, "a@b.com", "secret1", nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestService_Login_WrongCredentials(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	_, _, err := service.Register(ctx, "a@b.com", "secret1", nil)
	require.NoError(t, err)

	_, _, err = service.Login(ctx, "a@b.com", "wrong-password")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthorized))

	_, _, err = service.Login(ctx, "nobody@b.com", "secret1")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthorized))
}

func TestService_Resolve(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	profile, token, err := service.Register(ctx, "a@b.com", "secret1", nil)
	require.NoError(t, err)

	session := service.Resolve(token)
	assert.Equal(t, SessionPresent, session.State)
	assert.Equal(t, profile.ID, session.UserID)
	assert.Equal(t, "a@b.com", session.Email)

	assert.Equal(t, SessionAbsent, service.Resolve("").State)
	assert.Equal(t, SessionAbsent, service.Resolve("garbage").State)
}

func TestService_GetProfile(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	profile, _, err := service.Register(ctx, "a@b.com", "secret1", nil)
	require.NoError(t, err)

	fetched, err := service.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.Email, fetched.Email)

	_, err = service.GetProfile(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	tokens := NewJWTManager("test-secret", -time.Minute)

	token, err := tokens.Generate("u1", "a@b.com")
	require.NoError(t, err)

	_, err = tokens.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTManager("other-secret", time.Hour).Generate("u1", "a@b.com")
	require.NoError(t, err)

	_, err = NewJWTManager("test-secret", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
