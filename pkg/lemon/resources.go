package lemon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
)

// OrderSide is the direction of an order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// ParseOrderSide converts user input into an OrderSide.
func ParseOrderSide(value string) (OrderSide, error) {
	switch side := OrderSide(strings.ToLower(strings.TrimSpace(value))); side {
	case OrderSideBuy, OrderSideSell:
		return side, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidSide, value)
	}
}

// Sorting orders list results by date.
type Sorting string

const (
	SortingAscending  Sorting = "asc_"
	SortingDescending Sorting = "desc_"
)

// BankStatementType classifies account bank statement entries.
type BankStatementType string

const (
	BankStatementPayIn      BankStatementType = "pay_in"
	BankStatementPayOut     BankStatementType = "pay_out"
	BankStatementOrderBuy   BankStatementType = "order_buy"
	BankStatementOrderSell  BankStatementType = "order_sell"
	BankStatementEODBalance BankStatementType = "eod_balance"
	BankStatementDividend   BankStatementType = "dividend"
	BankStatementTaxRefund  BankStatementType = "tax_refund"
)

// StatementType classifies position statements.
type StatementType string

const (
	StatementOrderBuy  StatementType = "order_buy"
	StatementOrderSell StatementType = "order_sell"
	StatementSplit     StatementType = "split"
	StatementImport    StatementType = "import"
	StatementSNX       StatementType = "snx"
)

// InstrumentType classifies tradable instruments.
type InstrumentType string

const (
	InstrumentStock   InstrumentType = "stock"
	InstrumentBond    InstrumentType = "bond"
	InstrumentFund    InstrumentType = "fund"
	InstrumentETF     InstrumentType = "etf"
	InstrumentWarrant InstrumentType = "warrant"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusInactive          OrderStatus = "inactive"
	OrderStatusActive            OrderStatus = "active"
	OrderStatusOpen              OrderStatus = "open"
	OrderStatusInProgress        OrderStatus = "in_progress"
	OrderStatusCanceling         OrderStatus = "canceling"
	OrderStatusExecuted          OrderStatus = "executed"
	OrderStatusCanceled          OrderStatus = "canceled"
	OrderStatusExpired           OrderStatus = "expired"
	OrderStatusPartiallyExecuted OrderStatus = "partially_executed"
	OrderStatusRejected          OrderStatus = "rejected"
)

// Account is the brokerage account of the API key owner.
// Monetary amounts are integers in hundredths of a cent.
type Account struct {
	CreatedAt             time.Time  `json:"created_at"                    yaml:"created_at"`
	AccountID             string     `json:"account_id"                    yaml:"account_id"`
	Firstname             string     `json:"firstname"                     yaml:"firstname"`
	Lastname              string     `json:"lastname,omitempty"            yaml:"lastname,omitempty"`
	Email                 string     `json:"email"                         yaml:"email"`
	Phone                 string     `json:"phone,omitempty"               yaml:"phone,omitempty"`
	Address               string     `json:"address,omitempty"             yaml:"address,omitempty"`
	BillingAddress        string     `json:"billing_address,omitempty"     yaml:"billing_address,omitempty"`
	BillingEmail          string     `json:"billing_email,omitempty"       yaml:"billing_email,omitempty"`
	BillingName           string     `json:"billing_name,omitempty"        yaml:"billing_name,omitempty"`
	BillingVAT            string     `json:"billing_vat,omitempty"         yaml:"billing_vat,omitempty"`
	Mode                  Mode       `json:"mode"                          yaml:"mode"`
	DepositID             string     `json:"deposit_id,omitempty"          yaml:"deposit_id,omitempty"`
	ClientID              string     `json:"client_id,omitempty"           yaml:"client_id,omitempty"`
	AccountNumber         string     `json:"account_number,omitempty"      yaml:"account_number,omitempty"`
	IBANBrokerage         string     `json:"iban_brokerage,omitempty"      yaml:"iban_brokerage,omitempty"`
	IBANOrigin            string     `json:"iban_origin,omitempty"         yaml:"iban_origin,omitempty"`
	BankNameOrigin        string     `json:"bank_name_origin,omitempty"    yaml:"bank_name_origin,omitempty"`
	Balance               int64      `json:"balance"                       yaml:"balance"`
	CashToInvest          int64      `json:"cash_to_invest"                yaml:"cash_to_invest"`
	CashToWithdraw        int64      `json:"cash_to_withdraw"              yaml:"cash_to_withdraw"`
	AmountBoughtIntraday  int64      `json:"amount_bought_intraday"        yaml:"amount_bought_intraday"`
	AmountSoldIntraday    int64      `json:"amount_sold_intraday"          yaml:"amount_sold_intraday"`
	AmountOpenOrders      int64      `json:"amount_open_orders"            yaml:"amount_open_orders"`
	AmountOpenWithdrawals int64      `json:"amount_open_withdrawals"       yaml:"amount_open_withdrawals"`
	AmountEstimateTaxes   int64      `json:"amount_estimate_taxes"         yaml:"amount_estimate_taxes"`
	ApprovedAt            *time.Time `json:"approved_at,omitempty"         yaml:"approved_at,omitempty"`
	TradingPlan           string     `json:"trading_plan"                  yaml:"trading_plan"`
	DataPlan              string     `json:"data_plan"                     yaml:"data_plan"`
	TaxAllowance          int64      `json:"tax_allowance"                 yaml:"tax_allowance"`
	TaxAllowanceStart     *Date      `json:"tax_allowance_start,omitempty" yaml:"tax_allowance_start,omitempty"`
	TaxAllowanceEnd       *Date      `json:"tax_allowance_end,omitempty"   yaml:"tax_allowance_end,omitempty"`
}

// Withdrawal is a payout from the account to the reference bank account.
type Withdrawal struct {
	ID          string     `json:"id"                    yaml:"id"`
	Amount      int64      `json:"amount"                yaml:"amount"`
	CreatedAt   time.Time  `json:"created_at"            yaml:"created_at"`
	Date        *time.Time `json:"date,omitempty"        yaml:"date,omitempty"`
	Idempotency string     `json:"idempotency,omitempty" yaml:"idempotency,omitempty"`
}

// WithdrawalCreateRequest is the body of POST account/withdrawals.
type WithdrawalCreateRequest struct {
	Amount      int64  `json:"amount"`
	PIN         int64  `json:"pin"`
	Idempotency string `json:"idempotency,omitempty"`
}

// BankStatement is one entry of the account's bank statement.
type BankStatement struct {
	ID        string            `json:"id"                   yaml:"id"`
	AccountID string            `json:"account_id"           yaml:"account_id"`
	Type      BankStatementType `json:"type"                 yaml:"type"`
	Date      Date              `json:"date"                 yaml:"date"`
	Amount    int64             `json:"amount"               yaml:"amount"`
	ISIN      string            `json:"isin,omitempty"       yaml:"isin,omitempty"`
	ISINTitle string            `json:"isin_title,omitempty" yaml:"isin_title,omitempty"`
	Quantity  int64             `json:"quantity,omitempty"   yaml:"quantity,omitempty"`
	CreatedAt time.Time         `json:"created_at"           yaml:"created_at"`
}

// RegulatoryInformation is the cost disclosure attached to a placed order.
type RegulatoryInformation struct {
	CostsEntry                      int64  `json:"costs_entry"                         yaml:"costs_entry"`
	CostsEntryPct                   string `json:"costs_entry_pct"                     yaml:"costs_entry_pct"`
	CostsRunning                    int64  `json:"costs_running"                       yaml:"costs_running"`
	CostsRunningPct                 string `json:"costs_running_pct"                   yaml:"costs_running_pct"`
	CostsProduct                    int64  `json:"costs_product"                       yaml:"costs_product"`
	CostsProductPct                 string `json:"costs_product_pct"                   yaml:"costs_product_pct"`
	CostsExit                       int64  `json:"costs_exit"                          yaml:"costs_exit"`
	CostsExitPct                    string `json:"costs_exit_pct"                      yaml:"costs_exit_pct"`
	YieldReductionYear              int64  `json:"yield_reduction_year"                yaml:"yield_reduction_year"`
	YieldReductionYearPct           string `json:"yield_reduction_year_pct"            yaml:"yield_reduction_year_pct"`
	YieldReductionYearFollowing     int64  `json:"yield_reduction_year_following"      yaml:"yield_reduction_year_following"`
	YieldReductionYearFollowingPct  string `json:"yield_reduction_year_following_pct"  yaml:"yield_reduction_year_following_pct"`
	YieldReductionYearExit          int64  `json:"yield_reduction_year_exit"           yaml:"yield_reduction_year_exit"`
	YieldReductionYearExitPct       string `json:"yield_reduction_year_exit_pct"       yaml:"yield_reduction_year_exit_pct"`
	EstimatedHoldingDurationYears   string `json:"estimated_holding_duration_years"    yaml:"estimated_holding_duration_years"`
	EstimatedYieldReductionTotal    int64  `json:"estimated_yield_reduction_total"     yaml:"estimated_yield_reduction_total"`
	EstimatedYieldReductionTotalPct string `json:"estimated_yield_reduction_total_pct" yaml:"estimated_yield_reduction_total_pct"`
	KIID                            string `json:"KIID"                                yaml:"KIID"`
	LegalDisclaimer                 string `json:"legal_disclaimer"                    yaml:"legal_disclaimer"`
}

// Order is a placed order. Orders are created inactive and must be activated.
type Order struct {
	ID                    string                 `json:"id"                               yaml:"id"`
	CreatedAt             time.Time              `json:"created_at"                       yaml:"created_at"`
	Status                OrderStatus            `json:"status"                           yaml:"status"`
	RegulatoryInformation *RegulatoryInformation `json:"regulatory_information,omitempty" yaml:"regulatory_information,omitempty"`
	ISIN                  string                 `json:"isin"                             yaml:"isin"`
	ExpiresAt             *time.Time             `json:"expires_at,omitempty"             yaml:"expires_at,omitempty"`
	Side                  OrderSide              `json:"side"                             yaml:"side"`
	Quantity              int64                  `json:"quantity"                         yaml:"quantity"`
	StopPrice             *int64                 `json:"stop_price,omitempty"             yaml:"stop_price,omitempty"`
	LimitPrice            *int64                 `json:"limit_price,omitempty"            yaml:"limit_price,omitempty"`
	Venue                 string                 `json:"venue"                            yaml:"venue"`
	EstimatedPrice        *int64                 `json:"estimated_price,omitempty"        yaml:"estimated_price,omitempty"`
	Notes                 string                 `json:"notes,omitempty"                  yaml:"notes,omitempty"`
	Idempotency           string                 `json:"idempotency,omitempty"            yaml:"idempotency,omitempty"`
	Charge                *int64                 `json:"charge,omitempty"                 yaml:"charge,omitempty"`
	ChargeableAt          *time.Time             `json:"chargeable_at,omitempty"          yaml:"chargeable_at,omitempty"`
	KeyCreationID         string                 `json:"key_creation_id,omitempty"        yaml:"key_creation_id,omitempty"`
}

// UnmarshalJSON accepts stop_price and limit_price either as integers or as
// numeric strings; the service has sent both.
func (o *Order) UnmarshalJSON(data []byte) error {
	type orderFields Order

	aux := struct {
		*orderFields

		StopPrice  json.RawMessage `json:"stop_price"`
		LimitPrice json.RawMessage `json:"limit_price"`
	}{orderFields: (*orderFields)(o)}

	err := json.Unmarshal(data, &aux)
	if err != nil {
		return err //nolint:wrapcheck
	}

	o.StopPrice, err = parseOptionalAmount(aux.StopPrice)
	if err != nil {
		return fmt.Errorf("stop_price: %w", err)
	}

	o.LimitPrice, err = parseOptionalAmount(aux.LimitPrice)
	if err != nil {
		return fmt.Errorf("limit_price: %w", err)
	}

	return nil
}

func parseOptionalAmount(raw json.RawMessage) (*int64, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	text := string(raw)

	if raw[0] == '"' {
		err := json.Unmarshal(raw, &text)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		if text == "" {
			return nil, nil
		}
	}

	amount, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("amount %s is not an integer: %w", raw, err)
	}

	return &amount, nil
}

// OrderCreateRequest is the body of POST orders.
// ExpiresAt accepts a date (YYYY-MM-DD) or a day count such as "7d".
type OrderCreateRequest struct {
	ISIN        string    `json:"isin"`
	ExpiresAt   string    `json:"expires_at,omitempty"`
	Side        OrderSide `json:"side"`
	Quantity    int64     `json:"quantity"`
	Venue       string    `json:"venue,omitempty"`
	StopPrice   *int64    `json:"stop_price,omitempty"`
	LimitPrice  *int64    `json:"limit_price,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Idempotency string    `json:"idempotency,omitempty"`
}

// Validate checks the fields the service always requires.
func (r *OrderCreateRequest) Validate() error {
	if r.ISIN == "" {
		return constants.ErrISINRequired
	}

	if r.Side != OrderSideBuy && r.Side != OrderSideSell {
		return fmt.Errorf("%w: %q", constants.ErrInvalidSide, r.Side)
	}

	if r.Quantity <= 0 {
		return constants.ErrInvalidQuantity
	}

	return nil
}

// OrderActivateRequest is the body of POST orders/{id}/activate.
type OrderActivateRequest struct {
	ID  string `json:"id"`
	PIN int64  `json:"pin"`
}

// Position is a currently held instrument.
type Position struct {
	ISIN                string `json:"isin"                  yaml:"isin"`
	ISINTitle           string `json:"isin_title"            yaml:"isin_title"`
	Quantity            int64  `json:"quantity"              yaml:"quantity"`
	BuyPriceAvg         int64  `json:"buy_price_avg"         yaml:"buy_price_avg"`
	EstimatedPriceTotal int64  `json:"estimated_price_total" yaml:"estimated_price_total"`
	EstimatedPrice      int64  `json:"estimated_price"       yaml:"estimated_price"`
}

// PositionPerformance is the realised result of a position over its lifetime.
type PositionPerformance struct {
	ISIN           string     `json:"isin"                yaml:"isin"`
	ISINTitle      string     `json:"isin_title"          yaml:"isin_title"`
	Profit         int64      `json:"profit"              yaml:"profit"`
	Loss           int64      `json:"loss"                yaml:"loss"`
	QuantityBought int64      `json:"quantity_bought"     yaml:"quantity_bought"`
	QuantitySold   int64      `json:"quantity_sold"       yaml:"quantity_sold"`
	QuantityOpen   int64      `json:"quantity_open"       yaml:"quantity_open"`
	OpenedAt       *time.Time `json:"opened_at,omitempty" yaml:"opened_at,omitempty"`
	ClosedAt       *time.Time `json:"closed_at,omitempty" yaml:"closed_at,omitempty"`
	Fees           int64      `json:"fees"                yaml:"fees"`
}

// Statement records an event that changed a position.
type Statement struct {
	ID         string        `json:"id"                    yaml:"id"`
	OrderID    string        `json:"order_id,omitempty"    yaml:"order_id,omitempty"`
	ExternalID string        `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	Type       StatementType `json:"type"                  yaml:"type"`
	Quantity   int64         `json:"quantity"              yaml:"quantity"`
	ISIN       string        `json:"isin"                  yaml:"isin"`
	ISINTitle  string        `json:"isin_title"            yaml:"isin_title"`
	Date       Date          `json:"date"                  yaml:"date"`
	CreatedAt  time.Time     `json:"created_at"            yaml:"created_at"`
}

// Instrument is a tradable security.
type Instrument struct {
	ISIN   string            `json:"isin"   yaml:"isin"`
	WKN    string            `json:"wkn"    yaml:"wkn"`
	Name   string            `json:"name"   yaml:"name"`
	Title  string            `json:"title"  yaml:"title"`
	Symbol string            `json:"symbol" yaml:"symbol"`
	Type   InstrumentType    `json:"type"   yaml:"type"`
	Venues []InstrumentVenue `json:"venues" yaml:"venues"`
}

// InstrumentVenue describes where an instrument can be traded.
type InstrumentVenue struct {
	Name     string `json:"name"     yaml:"name"`
	Title    string `json:"title"    yaml:"title"`
	MIC      string `json:"mic"      yaml:"mic"`
	IsOpen   bool   `json:"is_open"  yaml:"is_open"`
	Tradable bool   `json:"tradable" yaml:"tradable"`
	Currency string `json:"currency" yaml:"currency"`
}

// Venue is a trading venue.
type Venue struct {
	Name         string       `json:"name"          yaml:"name"`
	Title        string       `json:"title"         yaml:"title"`
	MIC          string       `json:"mic"           yaml:"mic"`
	IsOpen       bool         `json:"is_open"       yaml:"is_open"`
	OpeningHours OpeningHours `json:"opening_hours" yaml:"opening_hours"`
	OpeningDays  []Date       `json:"opening_days"  yaml:"opening_days"`
}

// OpeningHours are local wall-clock times, e.g. "08:00", in Timezone.
type OpeningHours struct {
	Start    string `json:"start"    yaml:"start"`
	End      string `json:"end"      yaml:"end"`
	Timezone string `json:"timezone" yaml:"timezone"`
}

// PageParams are the paging parameters shared by every list endpoint.
// Pages are 1-indexed.
type PageParams struct {
	Limit *int `url:"limit,omitempty"`
	Page  *int `url:"page,omitempty"`
}

// WithdrawalListParams filters GET account/withdrawals.
type WithdrawalListParams struct {
	PageParams
}

// BankStatementListParams filters GET account/bankstatements.
type BankStatementListParams struct {
	Type    *BankStatementType `url:"type,omitempty"`
	From    *Date              `url:"from,omitempty"`
	To      *Date              `url:"to,omitempty"`
	Sorting *Sorting           `url:"sorting,omitempty"`

	PageParams
}

// PositionListParams filters GET positions.
type PositionListParams struct {
	ISIN *string `url:"isin,omitempty"`

	PageParams
}

// PositionPerformanceParams filters GET positions/performance.
type PositionPerformanceParams struct {
	ISIN    *string  `url:"isin,omitempty"`
	From    *Date    `url:"from,omitempty"`
	To      *Date    `url:"to,omitempty"`
	Sorting *Sorting `url:"sorting,omitempty"`

	PageParams
}

// StatementListParams filters GET positions/statements.
type StatementListParams struct {
	ISIN    *string         `url:"isin,omitempty"`
	Types   []StatementType `url:"types,omitempty,comma"`
	From    *Date           `url:"from,omitempty"`
	To      *Date           `url:"to,omitempty"`
	Sorting *Sorting        `url:"sorting,omitempty"`

	PageParams
}

// InstrumentListParams filters GET instruments.
type InstrumentListParams struct {
	ISIN     *string         `url:"isin,omitempty"`
	Search   *string         `url:"search,omitempty"`
	Type     *InstrumentType `url:"type,omitempty"`
	MIC      *string         `url:"mic,omitempty"`
	Currency *string         `url:"currency,omitempty"`
	Tradable *bool           `url:"tradable,omitempty"`

	PageParams
}

// VenueListParams filters GET venues.
type VenueListParams struct {
	MIC *string `url:"mic,omitempty"`

	PageParams
}
