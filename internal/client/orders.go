package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/internal/http"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

const ordersPath = "orders"

// OrdersClient implements lemon.OrdersClient.
type OrdersClient struct {
	httpClient *http.Client
}

// NewOrdersClient creates a new orders client.
func NewOrdersClient(httpClient *http.Client) *OrdersClient {
	return &OrdersClient{
		httpClient: httpClient,
	}
}

// Create implements lemon.OrdersClient.Create. The order is created inactive.
func (c *OrdersClient) Create(ctx context.Context, request *lemon.OrderCreateRequest) (*lemon.Envelope[lemon.Order], error) {
	if request == nil {
		return nil, constants.ErrRequestBodyRequired
	}

	order, err := post[lemon.Envelope[lemon.Order]](ctx, c.httpClient, ordersPath, request)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	return order, nil
}

// Activate implements lemon.OrdersClient.Activate.
func (c *OrdersClient) Activate(ctx context.Context, orderID string, pin int64) (*lemon.Response, error) {
	if orderID == "" {
		return nil, constants.ErrOrderIDRequired
	}

	body := &lemon.OrderActivateRequest{ID: orderID, PIN: pin}

	resp, err := postAction[lemon.Response](ctx, c.httpClient, ordersPath, orderID, "activate", body)
	if err != nil {
		return nil, fmt.Errorf("activating order: %w", err)
	}

	return resp, nil
}

// Delete implements lemon.OrdersClient.Delete.
func (c *OrdersClient) Delete(ctx context.Context, orderID string) (*lemon.Response, error) {
	if orderID == "" {
		return nil, constants.ErrOrderIDRequired
	}

	resp, err := del[lemon.Response](ctx, c.httpClient, ordersPath, orderID)
	if err != nil {
		return nil, fmt.Errorf("deleting order: %w", err)
	}

	return resp, nil
}
