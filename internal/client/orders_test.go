package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestOrdersClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var body map[string]interface{}

		assert.NoError(t, decodeBody(r, &body))
		assert.Equal(t, "US0378331005", body["isin"])
		assert.Equal(t, "buy", body["side"])
		assert.InDelta(t, 2, body["quantity"], 0)
		assert.Equal(t, "XMUN", body["venue"])
		assert.Equal(t, "2021-12-24", body["expires_at"])
		assert.NotContains(t, body, "limit_price")
		assert.NotContains(t, body, "stop_price")

		writeJSON(w, http.StatusOK, `{
			"time": "2021-11-21T19:34:45.071+00:00",
			"status": "ok",
			"mode": "paper",
			"results": {
				"created_at": "2021-11-21T19:34:45.071+00:00",
				"id": "ord_pyPGQhhHHsVu8rJZwgj2FKTNQKDdTyJxHr",
				"status": "inactive",
				"regulatory_information": {
					"costs_entry": 20000,
					"costs_entry_pct": "0.30%",
					"KIID": "text",
					"legal_disclaimer": "lorem ipsum"
				},
				"isin": "US0378331005",
				"expires_at": "2021-12-24T22:59:00.000+00:00",
				"side": "buy",
				"quantity": 2,
				"stop_price": null,
				"limit_price": null,
				"venue": "XMUN",
				"estimated_price": 3540000,
				"notes": "I want to buy",
				"idempotency": "1234abcd",
				"charge": 0,
				"chargeable_at": null,
				"key_creation_id": "apk_pyJHHbbDDNympXsVwZzPp2nVGzGJVvqa2a"
			}
		}`)
	}))
	defer server.Close()

	client := NewOrdersClient(newTestHTTPClient(t, server))

	order, err := client.Create(context.Background(), &lemon.OrderCreateRequest{
		ISIN:      "US0378331005",
		ExpiresAt: "2021-12-24",
		Side:      lemon.OrderSideBuy,
		Quantity:  2,
		Venue:     "XMUN",
	})
	require.NoError(t, err)
	require.NotNil(t, order.Results)
	assert.Equal(t, lemon.OrderStatusInactive, order.Results.Status)
	assert.Equal(t, lemon.OrderSideBuy, order.Results.Side)
	assert.Nil(t, order.Results.LimitPrice)
	require.NotNil(t, order.Results.EstimatedPrice)
	assert.Equal(t, int64(3540000), *order.Results.EstimatedPrice)
	require.NotNil(t, order.Results.RegulatoryInformation)
	assert.Equal(t, "text", order.Results.RegulatoryInformation.KIID)
}

func TestOrdersClient_Create_NilRequest(t *testing.T) {
	t.Parallel()

	client := NewOrdersClient(nil)

	_, err := client.Create(context.Background(), nil)
	require.ErrorIs(t, err, constants.ErrRequestBodyRequired)
}

func TestOrdersClient_Activate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/orders/ord_123/activate", r.URL.Path)
			assert.Equal(t, "POST", r.Method)

			var body map[string]interface{}

			assert.NoError(t, decodeBody(r, &body))
			assert.InDelta(t, 1234, body["pin"], 0)
			assert.Equal(t, "ord_123", body["id"])

			writeJSON(w, http.StatusOK, `{"time":"2021-11-21T19:34:45.071+00:00","status":"ok","mode":"paper"}`)
		}))
		defer server.Close()

		client := NewOrdersClient(newTestHTTPClient(t, server))

		resp, err := client.Activate(context.Background(), "ord_123", 1234)
		require.NoError(t, err)
		assert.True(t, resp.OK())
	})

	t.Run("invalid pin", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, errorPinInvalid)
		}))
		defer server.Close()

		client := NewOrdersClient(newTestHTTPClient(t, server))

		resp, err := client.Activate(context.Background(), "ord_123", 1)
		require.Error(t, err)
		assert.Nil(t, resp)

		apiErr, ok := lemon.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, lemon.ErrorCodePinInvalid, apiErr.Code)
		assert.Equal(t, "Invalid PIN", apiErr.Message)
		assert.True(t, lemon.IsPinError(err))
	})

	t.Run("missing order id", func(t *testing.T) {
		t.Parallel()

		client := NewOrdersClient(nil)

		_, err := client.Activate(context.Background(), "", 1234)
		require.ErrorIs(t, err, constants.ErrOrderIDRequired)
	})

	t.Run("dot segment order id", func(t *testing.T) {
		t.Parallel()

		client := NewOrdersClient(nil)

		_, err := client.Activate(context.Background(), "..", 1234)
		require.ErrorIs(t, err, constants.ErrInvalidPathParam)
	})
}

func TestOrdersClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders/ord_123", r.URL.Path)
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, int64(0), r.ContentLength)

		writeJSON(w, http.StatusOK, `{"time":"2021-11-21T19:34:45.071+00:00","status":"ok","mode":"paper"}`)
	}))
	defer server.Close()

	client := NewOrdersClient(newTestHTTPClient(t, server))

	resp, err := client.Delete(context.Background(), "ord_123")
	require.NoError(t, err)
	assert.True(t, resp.OK())

	_, err = NewOrdersClient(nil).Delete(context.Background(), "..")
	require.ErrorIs(t, err, constants.ErrInvalidPathParam)
}

func TestOrdersClient_Create_StringPrices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{
			"time": "2021-11-21T19:34:45.071+00:00",
			"status": "ok",
			"mode": "paper",
			"results": {
				"id": "ord_abc",
				"status": "inactive",
				"isin": "US19260Q1076",
				"expires_at": "2021-11-28T22:59:00.000+00:00",
				"side": "buy",
				"quantity": 1,
				"stop_price": "1200000",
				"limit_price": null,
				"venue": "xmun",
				"estimated_price": 1245000,
				"notes": "my notes",
				"idempotency": "1234abcd"
			}
		}`)
	}))
	defer server.Close()

	client := NewOrdersClient(newTestHTTPClient(t, server))

	order, err := client.Create(context.Background(), &lemon.OrderCreateRequest{
		ISIN:     "US19260Q1076",
		Side:     lemon.OrderSideBuy,
		Quantity: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, order.Results)
	require.NotNil(t, order.Results.StopPrice)
	assert.Equal(t, int64(1200000), *order.Results.StopPrice)
	assert.Nil(t, order.Results.LimitPrice)
	assert.Equal(t, "xmun", order.Results.Venue)
}
