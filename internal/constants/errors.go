package constants

import "errors"

// Configuration errors.
var (
	ErrAPIKeyRequired = errors.New("API key is required")
	ErrInvalidMode    = errors.New("invalid mode, must be one of paper, live, market_data")
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrConfigRequired = errors.New("config is required")
	ErrModeNotTrading = errors.New("mode does not support trading endpoints")
	ErrModeNotMarket  = errors.New("mode does not support market data endpoints")
	ErrUnsupportedOut = errors.New("unsupported output format")
	ErrNoLogFilePath  = errors.New("log file path is empty")
)

// Request validation errors.
var (
	ErrOrderIDRequired       = errors.New("order ID is required")
	ErrPathParamRequired     = errors.New("path parameter is required")
	ErrInvalidPathParam      = errors.New("path parameter must not be . or ..")
	ErrRequestBodyRequired   = errors.New("request body is required")
	ErrPINRequired           = errors.New("PIN is required")
	ErrISINRequired          = errors.New("ISIN is required")
	ErrInvalidSide           = errors.New("invalid order side, must be buy or sell")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInvalidPIN            = errors.New("PIN must be numeric")
	ErrConfirmationDeclined  = errors.New("operation cancelled")
	ErrUnexpectedQueryParams = errors.New("query parameters must be a struct or pointer to struct")
)

// Response decoding errors.
var (
	ErrNullBody              = errors.New("response body is null")
	ErrEnvelopeStatusMissing = errors.New("response envelope has no status")
)
