package lemon

import (
	"context"
	"net/url"
	"time"
)

// BaseClient is implemented by both client kinds.
type BaseClient interface {
	// Mode returns the mode the client was constructed for.
	Mode() Mode
	// BaseURL returns a copy of the API root every path is resolved against.
	BaseURL() *url.URL
}

// TradingClient gives access to the trading endpoints of a paper or live account.
type TradingClient interface {
	BaseClient

	Account() AccountClient
	Withdrawals() WithdrawalsClient
	BankStatements() BankStatementsClient
	Orders() OrdersClient
	Positions() PositionsClient
}

// MarketDataClient gives access to the read-only market data endpoints.
type MarketDataClient interface {
	BaseClient

	Instruments() InstrumentsClient
	Venues() VenuesClient
}

// AccountClient reads the account.
type AccountClient interface {
	Get(ctx context.Context) (*Envelope[Account], error)
}

// WithdrawalsClient lists and requests withdrawals.
type WithdrawalsClient interface {
	List(ctx context.Context, params *WithdrawalListParams) (*PaginationResponse[Withdrawal], error)
	Create(ctx context.Context, request *WithdrawalCreateRequest) (*Response, error)
}

// BankStatementsClient lists bank statements.
type BankStatementsClient interface {
	List(ctx context.Context, params *BankStatementListParams) (*PaginationResponse[BankStatement], error)
}

// OrdersClient places, activates and cancels orders.
type OrdersClient interface {
	Create(ctx context.Context, request *OrderCreateRequest) (*Envelope[Order], error)
	Activate(ctx context.Context, orderID string, pin int64) (*Response, error)
	Delete(ctx context.Context, orderID string) (*Response, error)
}

// PositionsClient reads positions, their performance and statements.
type PositionsClient interface {
	List(ctx context.Context, params *PositionListParams) (*PaginationResponse[Position], error)
	Performance(ctx context.Context, params *PositionPerformanceParams) (*PaginationResponse[PositionPerformance], error)
	Statements(ctx context.Context, params *StatementListParams) (*PaginationResponse[Statement], error)
}

// InstrumentsClient searches instruments.
type InstrumentsClient interface {
	List(ctx context.Context, params *InstrumentListParams) (*PaginationResponse[Instrument], error)
}

// VenuesClient lists trading venues.
type VenuesClient interface {
	List(ctx context.Context, params *VenueListParams) (*PaginationResponse[Venue], error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a lemon client.
//
// Mode selects one of the fixed API roots. BaseURL overrides that root and is
// meant for tests and proxies. The API key is sent unvalidated as a Bearer
// token on every request; a wrong key surfaces as an APIError with code
// unauthorized or token_invalid on the first call.
type Config struct {
	// Mode selects the API root. Required.
	Mode Mode
	// APIKey is the bearer token issued for Mode.
	APIKey string
	// BaseURL, when set, replaces the API root of Mode.
	BaseURL string

	// HTTPTimeout bounds a single round trip. Zero means the default of 30s.
	HTTPTimeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// Interceptors run around every call.
	Interceptors *InterceptorChain
}
