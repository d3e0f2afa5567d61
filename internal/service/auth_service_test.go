package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdstrack/internal/config"
	"tdstrack/internal/domain"
	"tdstrack/internal/service"
)

func newAuthService(t *testing.T) service.AuthService {
	t.Helper()

	svc, err := service.NewAuthService(
		config.AuthConfig{AdminEmail: "admin@tdstrack.local", AdminPassword: "super-secret-pw"},
		config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Hour, Issuer: "tdstrack"},
	)
	require.NoError(t, err)
	return svc
}

func TestAuthService_Login_Succeeds(t *testing.T) {
	svc := newAuthService(t)

	token, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@tdstrack.local",
		Password: "super-secret-pw",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.True(t, token.ExpiresAt.After(time.Now()))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@tdstrack.local",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "intruder@example.com",
		Password: "super-secret-pw",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_RoundTrip(t *testing.T) {
	svc := newAuthService(t)

	token, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@tdstrack.local",
		Password: "super-secret-pw",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "admin@tdstrack.local", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "tdstrack", claims.Issuer)
}

func TestAuthService_ValidateToken_RejectsGarbage(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_RejectsForeignSecret(t *testing.T) {
	svc := newAuthService(t)

	other, err := service.NewAuthService(
		config.AuthConfig{AdminEmail: "admin@tdstrack.local", AdminPassword: "super-secret-pw"},
		config.JWTConfig{Secret: "different-secret", AccessTokenExpiry: time.Hour, Issuer: "tdstrack"},
	)
	require.NoError(t, err)

	token, err := other.Login(context.Background(), service.LoginInput{
		Email:    "admin@tdstrack.local",
		Password: "super-secret-pw",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.AccessToken)
	assert.Error(t, err)
}
