package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

func TestVenuesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/venues", r.URL.Path)
		assert.Equal(t, "mic=XMUN", r.URL.RawQuery)

		writeJSON(w, http.StatusOK, `{
			"time": "2021-11-21T19:34:45.071+00:00",
			"status": "ok",
			"mode": "market_data",
			"results": [{
				"name": "Börse München - Gettex",
				"title": "Gettex",
				"mic": "XMUN",
				"is_open": false,
				"opening_hours": {"start": "08:00", "end": "22:00", "timezone": "Europe/Berlin"},
				"opening_days": ["2021-11-22", "2021-11-23"]
			}],
			"total": 1,
			"page": 1,
			"pages": 1
		}`)
	}))
	defer server.Close()

	client := NewVenuesClient(newTestHTTPClient(t, server))

	list, err := client.List(context.Background(), &lemon.VenueListParams{MIC: lemon.String("XMUN")})
	require.NoError(t, err)
	require.Len(t, list.Results, 1)

	venue := list.Results[0]
	assert.Equal(t, "Europe/Berlin", venue.OpeningHours.Timezone)
	require.Len(t, venue.OpeningDays, 2)
	assert.Equal(t, time.November, venue.OpeningDays[0].Month())
	assert.Equal(t, 23, venue.OpeningDays[1].Day())
}

func TestVenuesClient_List_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewVenuesClient(newTestHTTPClient(t, server))

	_, err := client.List(context.Background(), nil)
	require.Error(t, err)

	transportErr := &lemon.TransportError{}
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
}
