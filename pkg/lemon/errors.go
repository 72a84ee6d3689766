package lemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrorCode is the machine-readable error code returned by the API.
type ErrorCode string

// Known error codes.
const (
	ErrorCodeUnauthorized                 ErrorCode = "unauthorized"
	ErrorCodeTokenInvalid                 ErrorCode = "token_invalid"
	ErrorCodeRateLimitExceeded            ErrorCode = "rate_limit_exceeded"
	ErrorCodeInternalError                ErrorCode = "internal_error"
	ErrorCodeOrderIdempotencyViolation    ErrorCode = "order_idempotency_violation"
	ErrorCodeOrderNotInactive             ErrorCode = "order_not_inactive"
	ErrorCodeOrderExpirationDateInvalid   ErrorCode = "order_expiration_date_invalid"
	ErrorCodeOrderTotalPriceLimitExceeded ErrorCode = "order_total_price_limit_exceeded"
	ErrorCodeInstrumentNotTradable        ErrorCode = "instrument_not_tradable"
	ErrorCodeInsufficientAccountBalance   ErrorCode = "insufficient_account_balance"
	ErrorCodeTradingBlocked               ErrorCode = "trading_blocked"
	ErrorCodePinMissing                   ErrorCode = "pin_missing"
	ErrorCodePinNotSet                    ErrorCode = "pin_not_set"
	ErrorCodePinInvalid                   ErrorCode = "pin_invalid"
	ErrorCodeWithdrawInsufficientFunds    ErrorCode = "withdraw_insufficient_funds"
	ErrorCodeWithdrawLimitExceeded        ErrorCode = "withdraw_limit_exceeded"
	ErrorCodeWithdrawRequestLimitExceeded ErrorCode = "withdraw_request_limit_exceeded"
	ErrorCodeForbiddenInCurrentState      ErrorCode = "forbidden_in_current_state"
	ErrorCodePlanNotAllowed               ErrorCode = "plan_not_allowed"
	ErrorCodeUnknown                      ErrorCode = "unknown"
)

var knownErrorCodes = map[ErrorCode]struct{}{
	ErrorCodeUnauthorized:                 {},
	ErrorCodeTokenInvalid:                 {},
	ErrorCodeRateLimitExceeded:            {},
	ErrorCodeInternalError:                {},
	ErrorCodeOrderIdempotencyViolation:    {},
	ErrorCodeOrderNotInactive:             {},
	ErrorCodeOrderExpirationDateInvalid:   {},
	ErrorCodeOrderTotalPriceLimitExceeded: {},
	ErrorCodeInstrumentNotTradable:        {},
	ErrorCodeInsufficientAccountBalance:   {},
	ErrorCodeTradingBlocked:               {},
	ErrorCodePinMissing:                   {},
	ErrorCodePinNotSet:                    {},
	ErrorCodePinInvalid:                   {},
	ErrorCodeWithdrawInsufficientFunds:    {},
	ErrorCodeWithdrawLimitExceeded:        {},
	ErrorCodeWithdrawRequestLimitExceeded: {},
	ErrorCodeForbiddenInCurrentState:      {},
	ErrorCodePlanNotAllowed:               {},
}

// ParseErrorCode maps a wire code to an ErrorCode. Codes the client does not
// know about become ErrorCodeUnknown.
func ParseErrorCode(raw string) ErrorCode {
	code := ErrorCode(raw)
	if _, ok := knownErrorCodes[code]; ok {
		return code
	}

	return ErrorCodeUnknown
}

// String implements fmt.Stringer.
func (c ErrorCode) String() string {
	return string(c)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ErrorCode) UnmarshalJSON(data []byte) error {
	var raw string

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("error code must be a string: %w", err)
	}

	*c = ParseErrorCode(raw)

	return nil
}

// ErrorPayload is the body the API returns with a non-200 status.
type ErrorPayload struct {
	Time         time.Time `json:"time"          yaml:"time"`
	Mode         Mode      `json:"mode"          yaml:"mode"`
	Status       string    `json:"status"        yaml:"status"`
	ErrorCode    string    `json:"error_code"    yaml:"error_code"`
	ErrorMessage string    `json:"error_message" yaml:"error_message"`
}

// UnmarshalJSON decodes the payload leniently: the timestamp may be an
// RFC 3339 string or epoch milliseconds, and an unreadable timestamp is
// dropped rather than failing the whole payload.
func (p *ErrorPayload) UnmarshalJSON(data []byte) error {
	var aux struct {
		Time         json.RawMessage `json:"time"`
		Mode         Mode            `json:"mode"`
		Status       string          `json:"status"`
		ErrorCode    string          `json:"error_code"`
		ErrorMessage string          `json:"error_message"`
	}

	err := json.Unmarshal(data, &aux)
	if err != nil {
		return err //nolint:wrapcheck
	}

	p.Time = parseLenientTime(aux.Time)
	p.Mode = aux.Mode
	p.Status = aux.Status
	p.ErrorCode = aux.ErrorCode
	p.ErrorMessage = aux.ErrorMessage

	return nil
}

func parseLenientTime(raw json.RawMessage) time.Time {
	if len(raw) == 0 {
		return time.Time{}
	}

	var text string
	if json.Unmarshal(raw, &text) == nil {
		parsed, err := time.Parse(time.RFC3339Nano, text)
		if err == nil {
			return parsed
		}

		return time.Time{}
	}

	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err == nil {
		return time.UnixMilli(millis).UTC()
	}

	return time.Time{}
}

// APIError is a structured error reported by the service.
type APIError struct {
	StatusCode int       `json:"status_code" yaml:"status_code"`
	Code       ErrorCode `json:"code"        yaml:"code"`
	RawCode    string    `json:"raw_code"    yaml:"raw_code"`
	Message    string    `json:"message"     yaml:"message"`
	Status     string    `json:"status"      yaml:"status"`
	Mode       Mode      `json:"mode"        yaml:"mode"`
	Time       time.Time `json:"time"        yaml:"time"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (status: %d)", e.RawCode, e.Message, e.StatusCode)
}

// TransportError covers failures where no structured API error is available:
// the request never completed, or a non-200 response had an unparsable body.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 && e.Err == nil {
		return fmt.Sprintf("%s %s: unexpected status %d %s",
			e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a 200 response whose body did not match the expected shape.
type DecodeError struct {
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response (status %d): %v", e.StatusCode, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrUnstructuredErrorBody is returned by ParseErrorPayload when a body is not an API error.
var ErrUnstructuredErrorBody = errors.New("response body is not a structured API error")

// ParseErrorPayload parses an error body into an APIError. A body that is not
// JSON or carries no error_code is reported as ErrUnstructuredErrorBody.
func ParseErrorPayload(data []byte, statusCode int) (*APIError, error) {
	var payload ErrorPayload

	err := json.Unmarshal(data, &payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnstructuredErrorBody, err)
	}

	if payload.ErrorCode == "" {
		return nil, ErrUnstructuredErrorBody
	}

	return &APIError{
		StatusCode: statusCode,
		Code:       ParseErrorCode(payload.ErrorCode),
		RawCode:    payload.ErrorCode,
		Message:    payload.ErrorMessage,
		Status:     payload.Status,
		Mode:       payload.Mode,
		Time:       payload.Time,
	}, nil
}

// AsAPIError extracts an APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// HasErrorCode reports whether err is an APIError carrying one of codes.
func HasErrorCode(err error, codes ...ErrorCode) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}

	for _, code := range codes {
		if apiErr.Code == code {
			return true
		}
	}

	return false
}

// IsUnauthorized checks if the API key was missing, wrong or expired.
func IsUnauthorized(err error) bool {
	return HasErrorCode(err, ErrorCodeUnauthorized, ErrorCodeTokenInvalid)
}

// IsRateLimitExceeded checks if the request was throttled.
func IsRateLimitExceeded(err error) bool {
	return HasErrorCode(err, ErrorCodeRateLimitExceeded)
}

// IsPinError checks if the error concerns the account PIN.
func IsPinError(err error) bool {
	return HasErrorCode(err, ErrorCodePinMissing, ErrorCodePinNotSet, ErrorCodePinInvalid)
}

// IsInsufficientFunds checks if an order or withdrawal exceeded the balance.
func IsInsufficientFunds(err error) bool {
	return HasErrorCode(err, ErrorCodeWithdrawInsufficientFunds, ErrorCodeInsufficientAccountBalance)
}

// IsTransportError checks if the call failed below the API level.
func IsTransportError(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}

// IsDecodeError checks if a successful response could not be decoded.
func IsDecodeError(err error) bool {
	decodeErr := &DecodeError{}

	return errors.As(err, &decodeErr)
}
