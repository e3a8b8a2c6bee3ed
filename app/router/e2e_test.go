package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Luisr26/ExpertSoft/app/bootstrap"
	"github.com/Luisr26/ExpertSoft/app/handlers"
	"github.com/Luisr26/ExpertSoft/app/router"
	businessflow "github.com/Luisr26/ExpertSoft/business_flow"
	"github.com/Luisr26/ExpertSoft/config"
	"github.com/Luisr26/ExpertSoft/seeder"
	dbtest "github.com/Luisr26/ExpertSoft/testing"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	tdb, err := dbtest.SetupTestDB(context.Background())
	if errors.Is(err, dbtest.ErrUnavailable) {
		t.Skip(err.Error())
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = tdb.Teardown() })

	paths, err := dbtest.BasicSeedFixture().Write(t.TempDir())
	require.NoError(t, err)

	log := zerolog.Nop()
	repos := bootstrap.NewRepositories(tdb.DB)
	pipeline := seeder.NewSeedPipeline(seeder.Repositories{
		Platforms:    repos.Platforms,
		Clients:      repos.Clients,
		Invoices:     repos.Invoices,
		Transactions: repos.Transactions,
	}, paths, seeder.OpenSource, nil, log)
	verifier := seeder.NewVerifier(repos.Platforms, repos.Clients, repos.Invoices, repos.Transactions)
	seedFlow := businessflow.NewSeedFlow(pipeline, verifier, nil, time.Minute, log)

	cfg := &config.AppConfig{
		Server:     config.ServerConfig{BodyLimit: 1 << 20, AllowedOrigins: []string{"*"}},
		Deployment: config.DeploymentConfig{Environment: "development", Version: "test"},
	}
	r := router.NewFiberRouter(cfg, router.Handlers{
		Platform:    handlers.NewPlatformHandler(businessflow.NewPlatformFlow(repos.Platforms), log),
		Client:      handlers.NewClientHandler(businessflow.NewClientFlow(repos.Clients, repos.Transactions), log),
		Invoice:     handlers.NewInvoiceHandler(businessflow.NewInvoiceFlow(repos.Invoices), log),
		Transaction: handlers.NewTransactionHandler(businessflow.NewTransactionFlow(repos.Transactions), log),
		Seed:        handlers.NewSeedHandler(seedFlow, time.Minute, log),
	}, log, io.Discard)
	r.SetupRoutes()
	return r.GetApp()
}

func call(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, fiber.TestConfig{Timeout: 30 * time.Second})
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestSeedThenQueryOverHTTP(t *testing.T) {
	app := newApp(t)

	status, _ := call(t, app, http.MethodPost, "/init-db", "")
	require.Equal(t, http.StatusOK, status)

	status, raw := call(t, app, http.MethodGet, "/clients/1/transactions", "")
	require.Equal(t, http.StatusOK, status)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Netflix", rows[0]["platform_name"])
	assert.Equal(t, "INV-1", rows[0]["invoice_number"])
	assert.Equal(t, "T1", rows[0]["id"])

	status, raw = call(t, app, http.MethodGet, "/verify-db", "")
	require.Equal(t, http.StatusOK, status)
	var report seeder.Report
	require.NoError(t, json.Unmarshal(raw, &report))
	assert.Equal(t, int64(1), report.Transactions)

	t.Run("create assigns the next id after seeded rows", func(t *testing.T) {
		status, raw := call(t, app, http.MethodPost, "/platforms", `{"name":"Daviplata"}`)
		require.Equal(t, http.StatusCreated, status)
		var created map[string]any
		require.NoError(t, json.Unmarshal(raw, &created))
		assert.EqualValues(t, 3, created["id"])
	})

	t.Run("referenced platform cannot be deleted", func(t *testing.T) {
		status, _ := call(t, app, http.MethodDelete, "/platforms/1", "")
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("transaction with unknown client is rejected", func(t *testing.T) {
		body := `{"id":"T9","client_id":99,"platform_id":1,"invoice_id":1,"timestamp":"2024-06-03T10:00:00Z","amount":"5.00","status":"Completed","type":"Invoice payment"}`
		status, _ := call(t, app, http.MethodPost, "/transactions", body)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("missing invoice is not found", func(t *testing.T) {
		status, _ := call(t, app, http.MethodGet, "/invoices/42", "")
		assert.Equal(t, http.StatusNotFound, status)
	})
}
