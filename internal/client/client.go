package client

import (
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/internal/http"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// TradingClient implements lemon.TradingClient.
type TradingClient struct {
	httpClient *http.Client
	mode       lemon.Mode

	// Resource clients
	account        lemon.AccountClient
	withdrawals    lemon.WithdrawalsClient
	bankStatements lemon.BankStatementsClient
	orders         lemon.OrdersClient
	positions      lemon.PositionsClient
}

// MarketDataClient implements lemon.MarketDataClient.
type MarketDataClient struct {
	httpClient *http.Client

	// Resource clients
	instruments lemon.InstrumentsClient
	venues      lemon.VenuesClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *lemon.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// NewTrading creates a trading client for config.Mode rooted at baseURL.
func NewTrading(config *lemon.Config, baseURL *url.URL) (*TradingClient, error) {
	if config == nil {
		return nil, constants.ErrConfigRequired
	}

	if !config.Mode.IsTrading() {
		return nil, fmt.Errorf("%w: %q", constants.ErrModeNotTrading, config.Mode)
	}

	httpClient := http.NewClient(baseURL, config.APIKey, createHTTPClientOptions(config)...)

	client := &TradingClient{
		httpClient: httpClient,
		mode:       config.Mode,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewMarketData creates a market data client rooted at baseURL.
func NewMarketData(config *lemon.Config, baseURL *url.URL) (*MarketDataClient, error) {
	if config == nil {
		return nil, constants.ErrConfigRequired
	}

	if config.Mode != lemon.ModeMarketData {
		return nil, fmt.Errorf("%w: %q", constants.ErrModeNotMarket, config.Mode)
	}

	httpClient := http.NewClient(baseURL, config.APIKey, createHTTPClientOptions(config)...)

	client := &MarketDataClient{
		httpClient: httpClient,
	}

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *TradingClient) initializeResourceClients() {
	c.account = NewAccountClient(c.httpClient)
	c.withdrawals = NewWithdrawalsClient(c.httpClient)
	c.bankStatements = NewBankStatementsClient(c.httpClient)
	c.orders = NewOrdersClient(c.httpClient)
	c.positions = NewPositionsClient(c.httpClient)
}

// Mode implements lemon.BaseClient.
func (c *TradingClient) Mode() lemon.Mode {
	return c.mode
}

// BaseURL implements lemon.BaseClient.
func (c *TradingClient) BaseURL() *url.URL {
	return c.httpClient.BaseURL()
}

// Account implements lemon.TradingClient.
func (c *TradingClient) Account() lemon.AccountClient {
	return c.account
}

// Withdrawals implements lemon.TradingClient.
func (c *TradingClient) Withdrawals() lemon.WithdrawalsClient {
	return c.withdrawals
}

// BankStatements implements lemon.TradingClient.
func (c *TradingClient) BankStatements() lemon.BankStatementsClient {
	return c.bankStatements
}

// Orders implements lemon.TradingClient.
func (c *TradingClient) Orders() lemon.OrdersClient {
	return c.orders
}

// Positions implements lemon.TradingClient.
func (c *TradingClient) Positions() lemon.PositionsClient {
	return c.positions
}

func (c *MarketDataClient) initializeResourceClients() {
	c.instruments = NewInstrumentsClient(c.httpClient)
	c.venues = NewVenuesClient(c.httpClient)
}

// Mode implements lemon.BaseClient.
func (c *MarketDataClient) Mode() lemon.Mode {
	return lemon.ModeMarketData
}

// BaseURL implements lemon.BaseClient.
func (c *MarketDataClient) BaseURL() *url.URL {
	return c.httpClient.BaseURL()
}

// Instruments implements lemon.MarketDataClient.
func (c *MarketDataClient) Instruments() lemon.InstrumentsClient {
	return c.instruments
}

// Venues implements lemon.MarketDataClient.
func (c *MarketDataClient) Venues() lemon.VenuesClient {
	return c.venues
}
