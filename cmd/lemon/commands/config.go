package commands

import (
	"fmt"
	"io"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
	"github.com/fivetwenty-io/lemon-client/pkg/lemonclient"
)

// Configuration keys shared by flags, environment and the config file.
const (
	KeyAPIKey     = "api-key"
	KeyDataAPIKey = "data-api-key"
	KeyMode       = "mode"
	KeyBaseURL    = "base-url"
	KeyOutput     = "output"
	KeyVerbose    = "verbose"
	KeyLogFile    = "log-file"
	KeyStats      = "stats"
	KeyTimeout    = "timeout"
)

var (
	statsMu        sync.Mutex
	statsCollector *lemon.MetricsCollector
)

// CreateTradingClient builds a paper or live client from the current configuration.
func CreateTradingClient() (lemon.TradingClient, error) {
	mode, err := lemon.ParseMode(viper.GetString(KeyMode))
	if err != nil {
		return nil, fmt.Errorf("reading mode: %w", err)
	}

	if !mode.IsTrading() {
		return nil, fmt.Errorf("%w: %q, use --mode paper or --mode live", constants.ErrModeNotTrading, mode)
	}

	apiKey := viper.GetString(KeyAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w, set --api-key or %s_API_KEY", constants.ErrAPIKeyRequired, constants.EnvPrefix)
	}

	config, err := buildClientConfig(mode, apiKey)
	if err != nil {
		return nil, err
	}

	client, err := lemonclient.NewTradingClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// CreateMarketDataClient builds a market data client. The data API key falls
// back to the trading key when it is not set.
func CreateMarketDataClient() (lemon.MarketDataClient, error) {
	apiKey := viper.GetString(KeyDataAPIKey)
	if apiKey == "" {
		apiKey = viper.GetString(KeyAPIKey)
	}

	if apiKey == "" {
		return nil, fmt.Errorf("%w, set --data-api-key or %s_DATA_API_KEY", constants.ErrAPIKeyRequired, constants.EnvPrefix)
	}

	config, err := buildClientConfig(lemon.ModeMarketData, apiKey)
	if err != nil {
		return nil, err
	}

	client, err := lemonclient.NewMarketDataClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func buildClientConfig(mode lemon.Mode, apiKey string) (*lemon.Config, error) {
	verbose := viper.GetBool(KeyVerbose)

	logger, err := NewLogger(verbose, viper.GetString(KeyLogFile))
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	chain := lemon.NewInterceptorChain()
	chain.AddResponseInterceptor(lemon.LoggingResponseInterceptor(logger))

	if verbose {
		chain.AddRequestInterceptor(lemon.LoggingInterceptor(logger))
	}

	if viper.GetBool(KeyStats) {
		statsMu.Lock()
		if statsCollector == nil {
			statsCollector = lemon.NewMetricsCollector()
		}

		statsCollector.Install(chain)
		statsMu.Unlock()
	}

	return &lemon.Config{
		Mode:         mode,
		APIKey:       apiKey,
		BaseURL:      viper.GetString(KeyBaseURL),
		HTTPTimeout:  viper.GetDuration(KeyTimeout),
		Debug:        verbose,
		Logger:       logger,
		Interceptors: chain,
	}, nil
}

// PrintStats writes the per-endpoint call statistics gathered with --stats.
func PrintStats(out io.Writer) error {
	statsMu.Lock()
	collector := statsCollector
	statsMu.Unlock()

	if collector == nil {
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("Endpoint", "Requests", "Errors", "Avg Latency")

	for _, endpoint := range collector.Endpoints() {
		metrics := collector.GetMetrics(endpoint)
		if metrics == nil {
			continue
		}

		_ = table.Append(endpoint,
			fmt.Sprintf("%d", metrics.TotalRequests),
			fmt.Sprintf("%d", metrics.TotalErrors),
			metrics.AverageLatency.String())
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
