package integration

import (
	"bytes"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentFunding fires 50 concurrent funding requests against the
// same wallet and verifies no deposit is lost and every transaction gets a
// unique id. The service mutex must serialize the mutate-persist-swap cycle.
func TestConcurrentFunding(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	concurrency := 50

	var wg sync.WaitGroup
	var successCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body := `{"amount":"10","card":{"number":"4242 4242 4242 4242","holder":"Load Test","expiry":"09/27","cvv":"123"}}`
			resp, err := http.Post(app.server.URL+"/api/v1/wallets/0/fund", "application/json", bytes.NewBufferString(body))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusCreated {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(concurrency), successCount.Load())

	// Every deposit landed: 50 * $10 = $500
	resp := app.get(t, "/api/v1/wallets")
	data := decodeData(t, resp)
	wallets := data["wallets"].([]interface{})
	assert.Equal(t, "$500", wallets[0].(map[string]interface{})["balance"])

	// 5 seeded fixtures + 50 fundings, all with distinct ids
	resp = app.get(t, "/api/v1/transactions")
	items := decodeData(t, resp)["items"].([]interface{})
	require.Len(t, items, 55)

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		id := item.(map[string]interface{})["id"].(string)
		if seen[id] {
			t.Fatalf("duplicate transaction id %s", id)
		}
		seen[id] = true
	}
}
