package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lemon-client/internal/http"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// BankStatementsClient implements lemon.BankStatementsClient.
type BankStatementsClient struct {
	httpClient *http.Client
}

// NewBankStatementsClient creates a new bank statements client.
func NewBankStatementsClient(httpClient *http.Client) *BankStatementsClient {
	return &BankStatementsClient{
		httpClient: httpClient,
	}
}

// List implements lemon.BankStatementsClient.List.
func (c *BankStatementsClient) List(ctx context.Context, params *lemon.BankStatementListParams) (*lemon.PaginationResponse[lemon.BankStatement], error) {
	path := "account/bankstatements"

	list, err := getWithQuery[lemon.PaginationResponse[lemon.BankStatement]](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing bank statements: %w", err)
	}

	return list, nil
}
