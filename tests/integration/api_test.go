package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpHandler "jetwallet/internal/adapter/http/handler"
	redisStorage "jetwallet/internal/adapter/storage/redis"
	"jetwallet/internal/core/ports"
	"jetwallet/internal/service"
	"jetwallet/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds the full application stack over in-memory Redis
// (miniredis). This exercises the real HTTP layer, middleware, handlers,
// the ledger service, and the Redis snapshot store end-to-end.

type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
	client *goredis.Client
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	app := &testApp{redis: mr, client: rdb}
	app.server = httptest.NewServer(newRouter(t, rdb))
	return app
}

// newRouter hydrates a fresh ledger service from whatever the Redis store
// currently holds. Calling it twice against the same client simulates a
// process restart.
func newRouter(t *testing.T, rdb *goredis.Client) http.Handler {
	t.Helper()

	store := redisStorage.NewSnapshotStore(rdb)
	log := logger.New("error", false)
	svc := service.NewLedgerService(store, service.Seed{Fixtures: true}, log)
	require.NoError(t, svc.Load(context.Background()))

	return httpHandler.SetupRouter(httpHandler.RouterDeps{
		Ledger:         svc,
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:         log,
	})
}

func (a *testApp) close() {
	a.server.Close()
	_ = a.client.Close()
}

func (a *testApp) post(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(a.server.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func (a *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(a.server.URL + path)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object")
	return data
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp := app.get(t, "/health")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_SeededState(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp := app.get(t, "/api/v1/wallets")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	wallets := data["wallets"].([]interface{})
	require.Len(t, wallets, 1)
	assert.Equal(t, "Primary Wallet", wallets[0].(map[string]interface{})["name"])

	resp = app.get(t, "/api/v1/transactions")
	data = decodeData(t, resp)
	assert.Len(t, data["items"].([]interface{}), 5)
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, "$115,500", summary["total_paid"])
}

func TestIntegration_FundingLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// Create a second wallet; it becomes active
	resp := app.post(t, "/api/v1/wallets", map[string]string{"name": "Charter Wallet"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeData(t, resp)
	walletID := created["id"].(string)

	// Fund it and save the card
	resp = app.post(t, "/api/v1/wallets/1/fund", map[string]interface{}{
		"amount": "$2,500.50",
		"card": map[string]string{
			"number": "4242 4242 4242 4242",
			"holder": "Jordan Mitchell",
			"expiry": "09/27",
			"cvv":    "123",
		},
		"save_card": true,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	txn := decodeData(t, resp)
	assert.Equal(t, "$2,500.50", txn["amount"])
	assert.Equal(t, "WALLET", txn["booking_id"])
	assert.Equal(t, "Paid", txn["status"])

	// Active wallet's ledger holds exactly the funding transaction
	resp = app.get(t, "/api/v1/transactions?wallet_id="+walletID)
	data := decodeData(t, resp)
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Card Payment", items[0].(map[string]interface{})["method"])

	// Balance reflects the deposit
	resp = app.get(t, "/api/v1/wallets")
	wallets := decodeData(t, resp)["wallets"].([]interface{})
	assert.Equal(t, "$2,500.50", wallets[1].(map[string]interface{})["balance"])
}

func TestIntegration_StateSurvivesRestart(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp := app.post(t, "/api/v1/wallets", map[string]string{"name": "Durable Wallet"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.post(t, "/api/v1/wallets/1/fund", map[string]interface{}{
		"amount": "300",
		"card": map[string]string{
			"number": "5555 4444 3333 2222",
			"holder": "Alex Hart",
			"expiry": "01/28",
			"cvv":    "456",
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Rebuild the whole stack over the same Redis instance
	app.server.Close()
	app.server = httptest.NewServer(newRouter(t, app.client))

	resp = app.get(t, "/api/v1/wallets")
	data := decodeData(t, resp)
	wallets := data["wallets"].([]interface{})
	require.Len(t, wallets, 2)
	assert.Equal(t, "Durable Wallet", wallets[1].(map[string]interface{})["name"])
	assert.Equal(t, "$300", wallets[1].(map[string]interface{})["balance"])
	assert.Equal(t, float64(1), data["active_index"])
}

func TestIntegration_RemoveWalletKeepsLastOne(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	req, err := http.NewRequest(http.MethodDelete, app.server.URL+"/api/v1/wallets/0", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestIntegration_RequestIDPropagated(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	req, err := http.NewRequest(http.MethodGet, app.server.URL+"/api/v1/wallets", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "it-test-42")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "it-test-42", resp.Header.Get("X-Request-ID"))
}
