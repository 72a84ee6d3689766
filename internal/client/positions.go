package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lemon-client/internal/http"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// PositionsClient implements lemon.PositionsClient.
type PositionsClient struct {
	httpClient *http.Client
}

// NewPositionsClient creates a new positions client.
func NewPositionsClient(httpClient *http.Client) *PositionsClient {
	return &PositionsClient{
		httpClient: httpClient,
	}
}

// List implements lemon.PositionsClient.List.
func (c *PositionsClient) List(ctx context.Context, params *lemon.PositionListParams) (*lemon.PaginationResponse[lemon.Position], error) {
	list, err := getWithQuery[lemon.PaginationResponse[lemon.Position]](ctx, c.httpClient, "positions", params)
	if err != nil {
		return nil, fmt.Errorf("listing positions: %w", err)
	}

	return list, nil
}

// Performance implements lemon.PositionsClient.Performance.
func (c *PositionsClient) Performance(ctx context.Context, params *lemon.PositionPerformanceParams) (*lemon.PaginationResponse[lemon.PositionPerformance], error) {
	list, err := getWithQuery[lemon.PaginationResponse[lemon.PositionPerformance]](ctx, c.httpClient, "positions/performance", params)
	if err != nil {
		return nil, fmt.Errorf("listing position performance: %w", err)
	}

	return list, nil
}

// Statements implements lemon.PositionsClient.Statements.
func (c *PositionsClient) Statements(ctx context.Context, params *lemon.StatementListParams) (*lemon.PaginationResponse[lemon.Statement], error) {
	list, err := getWithQuery[lemon.PaginationResponse[lemon.Statement]](ctx, c.httpClient, "positions/statements", params)
	if err != nil {
		return nil, fmt.Errorf("listing position statements: %w", err)
	}

	return list, nil
}
