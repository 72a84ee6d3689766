package client

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

func TestNewTrading(t *testing.T) {
	t.Parallel()

	base, err := url.Parse(constants.PaperTradingBaseURL)
	require.NoError(t, err)

	t.Run("paper", func(t *testing.T) {
		t.Parallel()

		client, err := NewTrading(&lemon.Config{Mode: lemon.ModePaper, APIKey: "k"}, base)
		require.NoError(t, err)
		assert.Equal(t, lemon.ModePaper, client.Mode())
		assert.Equal(t, constants.PaperTradingBaseURL, client.BaseURL().String())
		assert.NotNil(t, client.Account())
		assert.NotNil(t, client.Withdrawals())
		assert.NotNil(t, client.BankStatements())
		assert.NotNil(t, client.Orders())
		assert.NotNil(t, client.Positions())
	})

	t.Run("rejects market data mode", func(t *testing.T) {
		t.Parallel()

		_, err := NewTrading(&lemon.Config{Mode: lemon.ModeMarketData}, base)
		require.ErrorIs(t, err, constants.ErrModeNotTrading)
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := NewTrading(nil, base)
		require.ErrorIs(t, err, constants.ErrConfigRequired)
	})

	t.Run("base url copy is detached", func(t *testing.T) {
		t.Parallel()

		client, err := NewTrading(&lemon.Config{Mode: lemon.ModeLive}, base)
		require.NoError(t, err)

		copied := client.BaseURL()
		copied.Host = "example.com"

		assert.Equal(t, "paper-trading.lemon.markets", client.BaseURL().Host)
	})
}

func TestNewMarketData(t *testing.T) {
	t.Parallel()

	base, err := url.Parse(constants.MarketDataBaseURL)
	require.NoError(t, err)

	client, err := NewMarketData(&lemon.Config{Mode: lemon.ModeMarketData}, base)
	require.NoError(t, err)
	assert.Equal(t, lemon.ModeMarketData, client.Mode())
	assert.NotNil(t, client.Instruments())
	assert.NotNil(t, client.Venues())

	_, err = NewMarketData(&lemon.Config{Mode: lemon.ModePaper}, base)
	require.ErrorIs(t, err, constants.ErrModeNotMarket)
}

func TestTradingClient_ConcurrentCalls(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"ok","mode":"paper","results":{"account_id":"abc"}}`)
	}))
	defer server.Close()

	client := newTestTradingClient(t, server)

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			account, err := client.Account().Get(t.Context())
			if assert.NoError(t, err) {
				assert.Equal(t, "abc", account.Results.AccountID)
			}
		}()
	}

	wg.Wait()
}

func TestMarketDataClient_Wiring(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/venues", r.URL.Path)
		writeJSON(w, http.StatusOK, emptyPage)
	}))
	defer server.Close()

	client := newTestMarketDataClient(t, server)

	list, err := client.Venues().List(t.Context(), nil)
	require.NoError(t, err)
	assert.True(t, list.IsEmpty())
}
