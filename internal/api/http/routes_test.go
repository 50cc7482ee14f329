package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alurubalakarthikeya/Zephra/internal/dashboard"
	"github.com/alurubalakarthikeya/Zephra/internal/dashboard/providers"
	"github.com/alurubalakarthikeya/Zephra/internal/simulate"
	"github.com/alurubalakarthikeya/Zephra/internal/store"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	seeds := simulate.NewSeedState(time.Now())
	cache := store.NewMemoryCache(0)
	mock := providers.NewMockProvider(seeds, simulate.NewGenerator(), 0)

	svc, err := dashboard.NewService(seeds, cache, log, mock, nil, dashboard.ModeMock, "New York")
	require.NoError(t, err)

	app := fiber.New()
	RegisterRoutes(app, svc)
	return app
}

func TestDashboardEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?location=London", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dashboard.DashboardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "London", body.Location)
	assert.Equal(t, "mock", body.Source)
	assert.Len(t, body.AirQuality, 24)
	assert.Len(t, body.Forecast, 7)
	assert.NotEmpty(t, body.RequestID)
}

func TestDashboardEndpointDefaultLocation(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dashboard.DashboardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "New York", body.Location)
}

func TestModeEndpointValidation(t *testing.T) {
	app := newTestApp(t)

	// Unknown mode value should return 400.
	payload := bytes.NewBufferString(`{"mode":"hybrid"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/mode", payload)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Switching to live without a configured live provider should also fail.
	payload = bytes.NewBufferString(`{"mode":"live"}`)
	req = httptest.NewRequest(http.MethodPut, "/api/v1/mode", payload)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Reading the mode back works regardless.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/mode", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLocationEndpoint(t *testing.T) {
	app := newTestApp(t)

	payload := bytes.NewBufferString(`{"name":"Delhi"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/location", payload)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Missing name should return 400.
	payload = bytes.NewBufferString(`{}`)
	req = httptest.NewRequest(http.MethodPut, "/api/v1/location", payload)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
