package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-api/internal/utils"
)

func TestSendErrorShape(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusNotFound, "gone")
	})

	resp := performRequest(t, app)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var payload map[string]interface{}
	decode(t, resp, &payload)
	require.Equal(t, "gone", payload["error"])
	require.NotContains(t, payload, "details")
	require.NotContains(t, payload, "hint")
	require.NotContains(t, payload, "student")
}

func TestSendValidationErrorKeepsOrder(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendValidationError(c, "invalid payload", []string{"first", "second"})
	})

	resp := performRequest(t, app)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	decode(t, resp, &payload)
	require.Equal(t, "invalid payload", payload.Error)
	require.Equal(t, []string{"first", "second"}, payload.Details)
}

func TestSendConflictIncludesStudent(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendConflict(c, "email already in use", map[string]interface{}{"id": 7})
	})

	resp := performRequest(t, app)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var payload struct {
		Error   string                 `json:"error"`
		Student map[string]interface{} `json:"student"`
	}
	decode(t, resp, &payload)
	require.Equal(t, float64(7), payload.Student["id"])
}

func performRequest(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
