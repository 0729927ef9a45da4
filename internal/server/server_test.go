package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/repositories"
	"storefront/internal/services"
)

func newTestApp(ping func(context.Context) error) *fiber.App {
	products := repositories.NewMockProductRepository()
	admins := repositories.NewMockAdminRepository()
	return New(Deps{
		Logger:   zerolog.Nop(),
		Identity: services.NewLocalIdentityProvider(admins, "test_jwt_secret_that_is_long_enough_123", time.Hour),
		Products: services.NewProductService(products, nil),
		Messages: services.NewMessageService(repositories.NewMockMessageRepository(), nil),
		Checkout: services.NewCheckoutService(products, nil, "2349014964843", "₦"),
		Ping:     ping,
	})
}

func TestHealth(t *testing.T) {
	app := newTestApp(nil)

	for _, path := range []string{"/health", "/api/health"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
		_, err = time.Parse(time.RFC3339, body["time"])
		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	}
}

func TestHealthReportsUnreachableStore(t *testing.T) {
	app := newTestApp(func(context.Context) error { return errors.New("connection refused") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(nil)

	// Generate at least one sample for the request counter.
	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil), -1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
}

func TestUnknownRouteUsesErrorBody(t *testing.T) {
	app := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestPanicIsRecovered(t *testing.T) {
	app := newTestApp(nil)
	app.Get("/boom", func(c *fiber.Ctx) error { panic("kaboom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
