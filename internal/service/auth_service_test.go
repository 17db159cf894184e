package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-api/internal/config"
	"github.com/noah-isme/roster-api/internal/dto"
	"github.com/noah-isme/roster-api/internal/service"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:         "test-secret",
		JWTTokenTTL:       time.Hour,
		DemoUsername:      "testuser",
		DemoPassword:      "password123",
		DemoRole:          "student-admin",
		SessionToken:      "valid-session-token-12345",
		SessionCookieName: "sessionToken",
	}
}

func newAuthService(cfg config.Config) service.AuthService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return service.NewAuthService(cfg, validate, zerolog.New(io.Discard))
}

func TestLoginJWTIssuesVerifiableToken(t *testing.T) {
	cfg := testConfig()
	svc := newAuthService(cfg)

	response, err := svc.LoginJWT(context.Background(), dto.LoginRequest{
		Username: "testuser",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)
	require.Equal(t, int64(3600), response.ExpiresIn)
	require.Equal(t, "testuser", response.User.Username)
	require.Equal(t, "student-admin", response.User.Role)

	token, err := jwt.Parse(response.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "testuser", claims["username"])
	require.Equal(t, "student-admin", claims["role"])

	expiry, err := claims.GetExpirationTime()
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiry.Time, time.Minute)
}

func TestLoginJWTRejectsWrongCredentials(t *testing.T) {
	svc := newAuthService(testConfig())

	cases := []dto.LoginRequest{
		{Username: "testuser", Password: "wrong"},
		{Username: "someone-else", Password: "password123"},
	}

	for _, payload := range cases {
		_, err := svc.LoginJWT(context.Background(), payload)
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	}
}

func TestLoginJWTRejectsMissingFields(t *testing.T) {
	svc := newAuthService(testConfig())

	_, err := svc.LoginJWT(context.Background(), dto.LoginRequest{Username: "testuser"})

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestLoginCookieReturnsConfiguredSessionToken(t *testing.T) {
	cfg := testConfig()
	svc := newAuthService(cfg)

	user, token, err := svc.LoginCookie(context.Background(), dto.LoginRequest{
		Username: "testuser",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, cfg.SessionToken, token)
	require.Equal(t, "testuser", user.Username)
}
