package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shareit/internal/config"
	"shareit/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGateway points the gateway at a port nothing listens on, so any
// request that passes validation surfaces as a 502 instead of a backend reply.
func setupTestGateway(t *testing.T) *fiber.App {
	t.Helper()
	g := NewGateway(&config.Config{ServerURL: "http://127.0.0.1:1"})
	app := fiber.New()
	g.SetupRoutes(app)
	return app
}

func gatewayRequest(t *testing.T, app *fiber.App, method, path, userID string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(models.SharerUserHeader, userID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func gatewayErr(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	var out models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestGateway_SharerHeader(t *testing.T) {
	app := setupTestGateway(t)

	resp := gatewayRequest(t, app, fiber.MethodGet, "/items/", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.SharerUserHeader+" header is required", gatewayErr(t, resp).Error)

	resp = gatewayRequest(t, app, fiber.MethodGet, "/items/", "zero", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = gatewayRequest(t, app, fiber.MethodGet, "/items/", "0", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGateway_ValidationRejections(t *testing.T) {
	app := setupTestGateway(t)

	past := time.Now().Add(-2 * time.Hour)
	future := time.Now().Add(2 * time.Hour)

	tests := []struct {
		name     string
		method   string
		path     string
		userID   string
		body     fiber.Map
		errorMsg string
	}{
		{"user without name", fiber.MethodPost, "/users/", "", fiber.Map{"email": "a@b.c"}, "Name is required"},
		{"user without email", fiber.MethodPost, "/users/", "", fiber.Map{"name": "Alice"}, "Email is required"},
		{"user with broken email", fiber.MethodPost, "/users/", "", fiber.Map{"name": "Alice", "email": "broken"}, "Email is not valid"},
		{"user update with broken email", fiber.MethodPatch, "/users/1", "", fiber.Map{"email": "@x"}, "Email is not valid"},
		{"item without description", fiber.MethodPost, "/items/", "1", fiber.Map{"name": "drill", "available": true}, "Description is required"},
		{"item without available", fiber.MethodPost, "/items/", "1", fiber.Map{"name": "drill", "description": "18V"}, "Available is required"},
		{"comment without text", fiber.MethodPost, "/items/1/comment", "1", fiber.Map{"text": " "}, "Text is required"},
		{"booking without item", fiber.MethodPost, "/bookings/", "1", fiber.Map{"start": future, "end": future.Add(time.Hour)}, "Item id is required"},
		{"booking without window", fiber.MethodPost, "/bookings/", "1", fiber.Map{"item_id": 1}, "Wrong booking time"},
		{"booking starting in the past", fiber.MethodPost, "/bookings/", "1", fiber.Map{"item_id": 1, "start": past, "end": future}, "Wrong booking time"},
		{"booking ending in the past", fiber.MethodPost, "/bookings/", "1", fiber.Map{"item_id": 1, "start": past, "end": past.Add(time.Hour)}, "Wrong booking time"},
		{"request without description", fiber.MethodPost, "/requests/", "1", fiber.Map{"description": ""}, "Description is required"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp := gatewayRequest(t, app, tt.method, tt.path, tt.userID, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.errorMsg, gatewayErr(t, resp).Error)
		})
	}
}

func TestGateway_QueryValidation(t *testing.T) {
	app := setupTestGateway(t)

	resp := gatewayRequest(t, app, fiber.MethodGet, "/bookings/?state=FOO", "1", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unknown state: FOO", gatewayErr(t, resp).Error)

	resp = gatewayRequest(t, app, fiber.MethodGet, "/bookings/?from=-1", "1", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid pagination parameters", gatewayErr(t, resp).Error)

	resp = gatewayRequest(t, app, fiber.MethodPatch, "/bookings/1", "1", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Approved query parameter is required", gatewayErr(t, resp).Error)

	resp = gatewayRequest(t, app, fiber.MethodPatch, "/bookings/1?approved=maybe", "1", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid approved query parameter", gatewayErr(t, resp).Error)

	resp = gatewayRequest(t, app, fiber.MethodGet, "/items/?from=-1", "1", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid pagination parameters", gatewayErr(t, resp).Error)

	resp = gatewayRequest(t, app, fiber.MethodGet, "/items/search?text=drill&size=0", "1", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid pagination parameters", gatewayErr(t, resp).Error)
}

func TestGateway_ForwardsToUnreachableServer(t *testing.T) {
	app := setupTestGateway(t)

	// a valid request passes validation and hits the dead backend
	resp := gatewayRequest(t, app, fiber.MethodGet, "/users/", "", nil)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestGateway_HealthDoesNotForward(t *testing.T) {
	app := setupTestGateway(t)

	resp := gatewayRequest(t, app, fiber.MethodGet, "/health/live", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
