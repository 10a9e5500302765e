package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nodeBoard/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeStripe(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/customers", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ada@example.com", r.PostForm.Get("email"))
		assert.Equal(t, "Ada Lovelace", r.PostForm.Get("name"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cus_123","object":"customer","email":"ada@example.com"}`))
	})
	mux.HandleFunc("/v1/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "cus_123", r.URL.Query().Get("customer"))
		assert.Equal(t, "all", r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "list",
			"url": "/v1/subscriptions",
			"has_more": false,
			"data": [{
				"id": "sub_1",
				"object": "subscription",
				"status": "active",
				"current_period_end": 1893456000,
				"cancel_at_period_end": true,
				"items": {
					"object": "list",
					"data": [{"id": "si_1", "object": "subscription_item", "price": {"id": "price_pro", "object": "price"}}]
				}
			}]
		}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestStripeProvider(t *testing.T) {
	server := newFakeStripe(t)
	provider := newStripeProvider("sk_test_123", server.URL)

	customerID, err := provider.CreateCustomer(context.Background(), "ada@example.com", "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "cus_123", customerID)

	subscriptions, err := provider.ListSubscriptions(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, subscriptions, 1)
	assert.Equal(t, "sub_1", subscriptions[0].ID)
	assert.Equal(t, "active", subscriptions[0].Status)
	assert.Equal(t, "price_pro", subscriptions[0].PriceID)
	assert.True(t, subscriptions[0].CancelAtPeriodEnd)
	assert.True(t, subscriptions[0].CurrentPeriodEnd.Equal(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNewStripeProvider_DisabledWithoutKey(t *testing.T) {
	config, err := configs.Load("")
	require.NoError(t, err)
	assert.Nil(t, NewStripeProvider(config))
}
