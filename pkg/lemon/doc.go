// Package lemon provides types, interfaces, and helpers for working with the
// lemon.markets brokerage REST API.
//
// # Overview
//
// The lemon package defines the wire types (Account, Order, Position,
// Instrument, Venue, ...), the response envelopes they arrive in, the error
// taxonomy, and the interfaces of the per-endpoint clients. A concrete
// implementation is provided by the lemonclient package, which wires the
// configuration and transport. Most consumers import lemonclient to construct a
// client and then use the interfaces defined here.
//
// Getting a client
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
//	  trading := lemonclient.NewPaper("my-api-key")
//
//	  account, err := trading.Account().Get(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = account.Results.Balance
//
//	  positions, err := trading.Positions().List(ctx, &lemon.PositionListParams{
//	    PageParams: lemon.PageParams{Limit: lemon.Int(50)},
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = positions
//	}
//
// # Modes
//
// Each client is bound to exactly one Mode: paper trading, live trading or
// market data. The mode fixes the API root and cannot be changed afterwards.
// Trading endpoints live on TradingClient, instruments and venues on
// MarketDataClient.
//
// # Envelopes and pagination
//
// Single results arrive in Envelope, lists in PaginationResponse. Pages are
// 1-indexed. Next and Previous are returned as the service sent them; the
// client does not follow them. Use NextPage to extract the page number and
// issue the next call yourself.
//
// # Errors
//
// Every call returns one of three error kinds, recoverable with errors.As:
//
//   - *APIError: the service answered with a structured error payload.
//     Code holds the ErrorCode, RawCode the string as sent.
//   - *TransportError: the request failed, or a non-200 response carried no
//     structured payload.
//   - *DecodeError: a 200 response did not match the expected shape.
//
// Helpers such as IsUnauthorized, IsPinError and IsRateLimitExceeded branch on
// common cases. Nothing is retried; that policy belongs to the caller.
//
// # Interceptors
//
// InterceptorChain runs request and response hooks around each call. The
// package ships logging, header and metrics interceptors.
package lemon
