package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lemon-client/internal/http"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

const accountPath = "account"

// AccountClient implements lemon.AccountClient.
type AccountClient struct {
	httpClient *http.Client
}

// NewAccountClient creates a new account client.
func NewAccountClient(httpClient *http.Client) *AccountClient {
	return &AccountClient{
		httpClient: httpClient,
	}
}

// Get implements lemon.AccountClient.Get.
func (c *AccountClient) Get(ctx context.Context) (*lemon.Envelope[lemon.Account], error) {
	account, err := get[lemon.Envelope[lemon.Account]](ctx, c.httpClient, accountPath)
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	return account, nil
}
