package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lemon-client/internal/http"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// InstrumentsClient implements lemon.InstrumentsClient.
type InstrumentsClient struct {
	httpClient *http.Client
}

// NewInstrumentsClient creates a new instruments client.
func NewInstrumentsClient(httpClient *http.Client) *InstrumentsClient {
	return &InstrumentsClient{
		httpClient: httpClient,
	}
}

// List implements lemon.InstrumentsClient.List.
func (c *InstrumentsClient) List(ctx context.Context, params *lemon.InstrumentListParams) (*lemon.PaginationResponse[lemon.Instrument], error) {
	list, err := getWithQuery[lemon.PaginationResponse[lemon.Instrument]](ctx, c.httpClient, "instruments", params)
	if err != nil {
		return nil, fmt.Errorf("listing instruments: %w", err)
	}

	return list, nil
}
