// Package lemonclient provides the entry points for constructing lemon.markets
// API clients that implement the lemon.TradingClient and lemon.MarketDataClient
// interfaces.
//
// Each mode has a fixed API root. NewPaper and NewLive return a trading client
// for simulated and real-money trading, NewMarketData returns a client for the
// read-only market data API. The API key is sent as a bearer token on every
// request and is not validated up front.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/lemon-client/pkg/lemon"
//	  "github.com/fivetwenty-io/lemon-client/pkg/lemonclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  trading := lemonclient.NewPaper("paper-api-key")
//
//	  account, err := trading.Account().Get(ctx)
//	  if err != nil { log.Fatal(err) }
//	  log.Println(account.Results.AccountID)
//
//	  data := lemonclient.NewMarketData("data-api-key")
//
//	  instruments, err := data.Instruments().List(ctx, &lemon.InstrumentListParams{
//	    Search: lemon.String("tesla"),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = instruments
//	}
//
// # Configuration
//
// The mode constructors accept functional options (WithLogger, WithDebug,
// WithUserAgent, WithHTTPTimeout, WithBaseURL, WithInterceptors). When a
// configuration is assembled elsewhere, for example from a config file,
// New, NewTradingClient and NewMarketDataClient take a *lemon.Config and
// report an unusable BaseURL override as an error.
//
// Clients are immutable after construction and safe for concurrent use.
// Every call is a single round trip; nothing is retried or cached.
package lemonclient
