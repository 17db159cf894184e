package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-api/internal/config"
	"github.com/noah-isme/roster-api/internal/dto"
	"github.com/noah-isme/roster-api/internal/handler"
	"github.com/noah-isme/roster-api/internal/middleware"
	"github.com/noah-isme/roster-api/internal/repository"
	"github.com/noah-isme/roster-api/internal/router"
	"github.com/noah-isme/roster-api/internal/service"
)

// newTestApp wires a fully functional application against a temp-dir store,
// mirroring the production composition in cmd/api.
func newTestApp(t *testing.T) (*fiber.App, config.Config) {
	t.Helper()

	cfg := config.Config{
		AppName:           "Roster API (test)",
		AppEnv:            "test",
		JWTSecret:         "test-secret",
		JWTTokenTTL:       time.Hour,
		StudentsFile:      filepath.Join(t.TempDir(), "students.json"),
		DemoUsername:      "testuser",
		DemoPassword:      "password123",
		DemoRole:          "student-admin",
		SessionToken:      "valid-session-token-12345",
		SessionCookieName: "sessionToken",
	}

	logger := zerolog.New(io.Discard)

	studentRepo, err := repository.NewFileStudentRepository(cfg.StudentsFile, logger)
	require.NoError(t, err)

	validate := validator.New(validator.WithRequiredStructEnabled())

	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:    handler.NewAuthHandler(service.NewAuthService(cfg, validate, logger), cfg, logger),
		StudentHandler: handler.NewStudentHandler(service.NewStudentService(studentRepo, validate, logger), logger),
		DebugHandler:   handler.NewDebugHandler(),
		JWTGuard:       middleware.JWTProtected(cfg.JWTSecret),
		SessionGuard:   middleware.SessionProtected(cfg.SessionCookieName, cfg.SessionToken),
	})

	return app, cfg
}

func performJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, mutate ...func(*http.Request)) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, fn := range mutate {
		fn(req)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

// loginToken obtains a bearer token through the real login endpoint.
func loginToken(t *testing.T, app *fiber.App, cfg config.Config) string {
	t.Helper()

	resp := performJSON(t, app, http.MethodPost, "/auth/login-jwt", dto.LoginRequest{
		Username: cfg.DemoUsername,
		Password: cfg.DemoPassword,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tokenResponse dto.TokenResponse
	decodeBody(t, resp, &tokenResponse)
	require.NotEmpty(t, tokenResponse.Token)
	return tokenResponse.Token
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func withSessionCookie(cfg config.Config) func(*http.Request) {
	return func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: cfg.SessionCookieName, Value: cfg.SessionToken})
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func writeRequest(name, email string, age int) dto.StudentWriteRequest {
	return dto.StudentWriteRequest{
		Name:     strPtr(name),
		Age:      intPtr(age),
		Email:    strPtr(email),
		IsActive: boolPtr(true),
	}
}
