package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/internal/http"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

const withdrawalsPath = "account/withdrawals"

// WithdrawalsClient implements lemon.WithdrawalsClient.
type WithdrawalsClient struct {
	httpClient *http.Client
}

// NewWithdrawalsClient creates a new withdrawals client.
func NewWithdrawalsClient(httpClient *http.Client) *WithdrawalsClient {
	return &WithdrawalsClient{
		httpClient: httpClient,
	}
}

// List implements lemon.WithdrawalsClient.List.
func (c *WithdrawalsClient) List(ctx context.Context, params *lemon.WithdrawalListParams) (*lemon.PaginationResponse[lemon.Withdrawal], error) {
	list, err := getWithQuery[lemon.PaginationResponse[lemon.Withdrawal]](ctx, c.httpClient, withdrawalsPath, params)
	if err != nil {
		return nil, fmt.Errorf("listing withdrawals: %w", err)
	}

	return list, nil
}

// Create implements lemon.WithdrawalsClient.Create.
func (c *WithdrawalsClient) Create(ctx context.Context, request *lemon.WithdrawalCreateRequest) (*lemon.Response, error) {
	if request == nil {
		return nil, constants.ErrRequestBodyRequired
	}

	resp, err := post[lemon.Response](ctx, c.httpClient, withdrawalsPath, request)
	if err != nil {
		return nil, fmt.Errorf("creating withdrawal: %w", err)
	}

	return resp, nil
}
