package constants

import "time"

// API endpoints, one per trading mode.
const (
	// PaperTradingBaseURL is the root of the simulated trading API.
	PaperTradingBaseURL = "https://paper-trading.lemon.markets/v1/"

	// LiveTradingBaseURL is the root of the real-money trading API.
	LiveTradingBaseURL = "https://trading.lemon.markets/v1/"

	// MarketDataBaseURL is the root of the read-only market data API.
	MarketDataBaseURL = "https://data.lemon.markets/v1/"
)

// Mode names as they appear on the wire.
const (
	ModePaper      = "paper"
	ModeLive       = "live"
	ModeMarketData = "market_data"
)

// LogDirPerm is the permission for log directories.
const LogDirPerm = 0755

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// HTTP header names and values.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderUserAgent     = "User-Agent"

	ContentTypeJSON = "application/json"

	// BearerPrefix precedes the API key in the Authorization header.
	BearerPrefix = "Bearer "

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "lemon-client-go/" + Version
)

// Version is the library version reported in the default user agent.
const Version = "0.4.0"

// HTTPStatusOK is the only status treated as success by the dispatcher.
const HTTPStatusOK = 200

// StatusOK is the envelope status of a successful call.
const StatusOK = "ok"

// FirstPage is the index of the first page; pages are 1-indexed.
const FirstPage = 1

// Formatting.
const (
	// JSONIndentSize is the indentation used for JSON and YAML output.
	JSONIndentSize = 2

	// MaxErrorBodyPreview bounds how much of an unparsable body is quoted in errors.
	MaxErrorBodyPreview = 256

	// AmountScale converts wire amounts (hundredths of a cent) to currency units.
	AmountScale = 10000
)

// Format constants.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Log rotation defaults.
const (
	// DefaultLogMaxSizeMB is the size at which a log file is rotated.
	DefaultLogMaxSizeMB = 10

	// DefaultLogMaxBackups is the number of rotated files kept.
	DefaultLogMaxBackups = 5
)

// Environment and configuration file names.
const (
	EnvPrefix        = "LEMON"
	EnvPaperAPIKey   = "LEMON_PAPER_API_KEY"
	EnvMarketDataKey = "LEMON_DATA_API_KEY"
	ConfigDirName    = ".lemon"
	ConfigFileName   = "config"
	ConfigFileType   = "yml"
)

// CLI display values.
const (
	// IdempotencyAuto asks the CLI to generate an idempotency key.
	IdempotencyAuto = "auto"

	BooleanTrue  = "true"
	BooleanFalse = "false"
	NotAvailable = "N/A"

	// PaginationSummary is printed under paginated tables.
	PaginationSummary = "Page %d of %d (%d total)"
)
