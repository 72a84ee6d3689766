package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	internalhttp "github.com/fivetwenty-io/lemon-client/internal/http"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

const testAPIKey = "test-key"

// newTestHTTPClient returns a transport rooted at server.URL + "/v1/",
// mirroring the versioned roots of the real API.
func newTestHTTPClient(t *testing.T, server *httptest.Server) *internalhttp.Client {
	t.Helper()

	base, err := url.Parse(server.URL + "/v1/")
	require.NoError(t, err)

	return internalhttp.NewClient(base, testAPIKey)
}

func newTestTradingClient(t *testing.T, server *httptest.Server) *TradingClient {
	t.Helper()

	base, err := url.Parse(server.URL + "/v1/")
	require.NoError(t, err)

	client, err := NewTrading(&lemon.Config{Mode: lemon.ModePaper, APIKey: testAPIKey}, base)
	require.NoError(t, err)

	return client
}

func newTestMarketDataClient(t *testing.T, server *httptest.Server) *MarketDataClient {
	t.Helper()

	base, err := url.Parse(server.URL + "/v1/")
	require.NoError(t, err)

	client, err := NewMarketData(&lemon.Config{Mode: lemon.ModeMarketData, APIKey: testAPIKey}, base)
	require.NoError(t, err)

	return client
}

func writeJSON(writer http.ResponseWriter, status int, body string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_, _ = writer.Write([]byte(body))
}

const emptyPage = `{"time":"2021-11-21T19:34:45.071+00:00","status":"ok","mode":"paper",` +
	`"results":[],"previous":null,"next":null,"total":0,"page":1,"pages":0}`

const errorPinInvalid = `{"time":"2021-11-22T15:37:56.520+00:00","mode":"paper","status":"error",` +
	`"error_code":"pin_invalid","error_message":"Invalid PIN"}`

func decodeBody(r *http.Request, target interface{}) error {
	return json.NewDecoder(r.Body).Decode(target)
}

func ptr[T any](v T) *T {
	return &v
}
