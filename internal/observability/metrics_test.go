package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-api/internal/observability"
)

func TestCollectorsAreRegisteredOnce(t *testing.T) {
	require.NotNil(t, observability.Requests())
	require.NotNil(t, observability.Latency())

	// Repeat registration must not panic on the shared registry.
	observability.RegisterMetrics()
	require.NotNil(t, observability.Requests())
}

func TestHandlerServesScrapeEndpoint(t *testing.T) {
	observability.Requests().WithLabelValues(http.MethodGet, "/students", "200").Inc()

	app := fiber.New()
	app.Get("/metrics", observability.Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.True(t, strings.Contains(string(body), "roster_requests_total"))
}
