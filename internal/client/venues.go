package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lemon-client/internal/http"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// VenuesClient implements lemon.VenuesClient.
type VenuesClient struct {
	httpClient *http.Client
}

// NewVenuesClient creates a new venues client.
func NewVenuesClient(httpClient *http.Client) *VenuesClient {
	return &VenuesClient{
		httpClient: httpClient,
	}
}

// List implements lemon.VenuesClient.List.
func (c *VenuesClient) List(ctx context.Context, params *lemon.VenueListParams) (*lemon.PaginationResponse[lemon.Venue], error) {
	list, err := getWithQuery[lemon.PaginationResponse[lemon.Venue]](ctx, c.httpClient, "venues", params)
	if err != nil {
		return nil, fmt.Errorf("listing venues: %w", err)
	}

	return list, nil
}
