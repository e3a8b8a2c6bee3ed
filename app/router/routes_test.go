package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Luisr26/ExpertSoft/app/dto"
	"github.com/Luisr26/ExpertSoft/config"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoHandler answers every route with its handler name
type echoHandler struct{}

func (echoHandler) reply(name string) fiber.Handler {
	return func(c fiber.Ctx) error { return c.SendString(name) }
}

func (h echoHandler) List(c fiber.Ctx) error { return h.reply("list")(c) }
func (h echoHandler) Get(c fiber.Ctx) error {
	if c.Params("id") == "panic" {
		panic("boom")
	}
	return h.reply("get")(c)
}
func (h echoHandler) Create(c fiber.Ctx) error           { return h.reply("create")(c) }
func (h echoHandler) Update(c fiber.Ctx) error           { return h.reply("update")(c) }
func (h echoHandler) Delete(c fiber.Ctx) error           { return h.reply("delete")(c) }
func (h echoHandler) ListTransactions(c fiber.Ctx) error { return h.reply("client-transactions")(c) }
func (h echoHandler) InitDB(c fiber.Ctx) error           { return h.reply("init-db")(c) }
func (h echoHandler) VerifyDB(c fiber.Ctx) error         { return h.reply("verify-db")(c) }

func testConfig(env string) *config.AppConfig {
	return &config.AppConfig{
		Server:     config.ServerConfig{BodyLimit: 1 << 20, AllowedOrigins: []string{"*"}},
		Metrics:    config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Deployment: config.DeploymentConfig{Environment: env, Version: "test"},
	}
}

func newTestRouter(env string) *fiber.App {
	h := echoHandler{}
	r := NewFiberRouter(testConfig(env), Handlers{
		Platform:    h,
		Client:      h,
		Invoice:     h,
		Transaction: h,
		Seed:        h,
	}, zerolog.Nop(), io.Discard)
	r.SetupRoutes()
	return r.GetApp()
}

func send(t *testing.T, app *fiber.App, method, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestRoutes(t *testing.T) {
	app := newTestRouter("production")

	cases := []struct {
		method, target, want string
	}{
		{http.MethodGet, "/platforms", "list"},
		{http.MethodPost, "/clients", "create"},
		{http.MethodGet, "/clients/1/transactions", "client-transactions"},
		{http.MethodPut, "/invoices/3", "update"},
		{http.MethodDelete, "/transactions/T1", "delete"},
	}
	for _, tc := range cases {
		status, body := send(t, app, tc.method, tc.target)
		assert.Equal(t, http.StatusOK, status, tc.target)
		assert.Equal(t, tc.want, body, tc.target)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	app := newTestRouter("production")

	status, raw := send(t, app, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, status)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "Route not found", body.Message)
	assert.Equal(t, "/nope", body.Endpoint)
	assert.Equal(t, http.MethodGet, body.Method)
}

func TestSeedRoutesOnlyInDevelopment(t *testing.T) {
	status, _ := send(t, newTestRouter("production"), http.MethodPost, "/init-db")
	assert.Equal(t, http.StatusNotFound, status)

	status, body := send(t, newTestRouter("development"), http.MethodPost, "/init-db")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "init-db", body)
}

func TestPanicIsInternalServerError(t *testing.T) {
	status, raw := send(t, newTestRouter("production"), http.MethodGet, "/platforms/panic")
	assert.Equal(t, http.StatusInternalServerError, status)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	assert.Equal(t, "Internal server error", body.Message)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestRouter("production")

	status, raw := send(t, app, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, status)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &health))
	assert.Equal(t, "ok", health.Status)

	status, body := send(t, app, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "http_requests_total")
}
