package lemonclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/fivetwenty-io/lemon-client/internal/client"
	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// Option adjusts the configuration used by the mode constructors.
type Option func(*lemon.Config)

// WithLogger sets the logger used for debug output.
func WithLogger(logger lemon.Logger) Option {
	return func(c *lemon.Config) {
		c.Logger = logger
	}
}

// WithDebug enables request and response logging through the logger.
func WithDebug(debug bool) Option {
	return func(c *lemon.Config) {
		c.Debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *lemon.Config) {
		c.UserAgent = userAgent
	}
}

// WithHTTPTimeout bounds a single round trip.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *lemon.Config) {
		c.HTTPTimeout = timeout
	}
}

// WithBaseURL replaces the fixed API root, e.g. to point at a test server.
func WithBaseURL(baseURL *url.URL) Option {
	return func(c *lemon.Config) {
		if baseURL != nil {
			c.BaseURL = baseURL.String()
		}
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *lemon.InterceptorChain) Option {
	return func(c *lemon.Config) {
		c.Interceptors = chain
	}
}

// NewPaper creates a client for simulated trading.
func NewPaper(apiKey string, opts ...Option) lemon.TradingClient {
	return mustTrading(configure(lemon.ModePaper, apiKey, opts))
}

// NewLive creates a client for real-money trading.
func NewLive(apiKey string, opts ...Option) lemon.TradingClient {
	return mustTrading(configure(lemon.ModeLive, apiKey, opts))
}

// NewMarketData creates a client for the market data API.
func NewMarketData(apiKey string, opts ...Option) lemon.MarketDataClient {
	marketData, err := NewMarketDataClient(configure(lemon.ModeMarketData, apiKey, opts))
	if err != nil {
		panic(fmt.Sprintf("lemonclient: %v", err))
	}

	return marketData
}

// New creates the client matching config.Mode. The result is a
// lemon.TradingClient for paper and live, and a lemon.MarketDataClient
// for market_data.
func New(config *lemon.Config) (lemon.BaseClient, error) {
	if config == nil {
		return nil, constants.ErrConfigRequired
	}

	if config.Mode == lemon.ModeMarketData {
		return NewMarketDataClient(config)
	}

	return NewTradingClient(config)
}

// NewTradingClient creates a paper or live trading client from config.
func NewTradingClient(config *lemon.Config) (lemon.TradingClient, error) {
	baseURL, err := resolveBaseURL(config)
	if err != nil {
		return nil, err
	}

	trading, err := client.NewTrading(config, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create trading client: %w", err)
	}

	return trading, nil
}

// NewMarketDataClient creates a market data client from config.
func NewMarketDataClient(config *lemon.Config) (lemon.MarketDataClient, error) {
	baseURL, err := resolveBaseURL(config)
	if err != nil {
		return nil, err
	}

	marketData, err := client.NewMarketData(config, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create market data client: %w", err)
	}

	return marketData, nil
}

func configure(mode lemon.Mode, apiKey string, opts []Option) *lemon.Config {
	config := &lemon.Config{
		Mode:   mode,
		APIKey: apiKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// mustTrading panics on failure. The mode constructors only fail when a
// fixed base URL constant does not parse, which cannot happen at runtime.
func mustTrading(config *lemon.Config) lemon.TradingClient {
	trading, err := NewTradingClient(config)
	if err != nil {
		panic(fmt.Sprintf("lemonclient: %v", err))
	}

	return trading
}

func resolveBaseURL(config *lemon.Config) (*url.URL, error) {
	if config == nil {
		return nil, constants.ErrConfigRequired
	}

	if !config.Mode.Valid() {
		return nil, fmt.Errorf("%w: %q", constants.ErrInvalidMode, config.Mode)
	}

	raw := config.Mode.BaseURL()
	if config.BaseURL != "" {
		raw = config.BaseURL
	}

	baseURL, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidBaseURL, err)
	}

	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", constants.ErrInvalidBaseURL, raw)
	}

	return baseURL, nil
}
