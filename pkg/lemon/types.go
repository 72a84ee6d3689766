package lemon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
)

// Mode identifies the trading environment a client or response belongs to.
type Mode string

const (
	// ModePaper is simulated trading.
	ModePaper Mode = constants.ModePaper
	// ModeLive is real-money trading.
	ModeLive Mode = constants.ModeLive
	// ModeMarketData is the read-only market data feed.
	ModeMarketData Mode = constants.ModeMarketData
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModePaper, ModeLive, ModeMarketData:
		return true
	default:
		return false
	}
}

// IsTrading reports whether m serves the trading endpoints.
func (m Mode) IsTrading() bool {
	return m == ModePaper || m == ModeLive
}

// BaseURL returns the fixed API root for m, or "" for an unknown mode.
func (m Mode) BaseURL() string {
	switch m {
	case ModePaper:
		return constants.PaperTradingBaseURL
	case ModeLive:
		return constants.LiveTradingBaseURL
	case ModeMarketData:
		return constants.MarketDataBaseURL
	default:
		return ""
	}
}

// ParseMode converts a user supplied string into a Mode.
// "data" and "market-data" are accepted as aliases of market_data.
func ParseMode(value string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))

	switch normalized {
	case constants.ModePaper:
		return ModePaper, nil
	case constants.ModeLive:
		return ModeLive, nil
	case constants.ModeMarketData, "market-data", "data":
		return ModeMarketData, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidMode, value)
	}
}

// Response is the envelope header shared by every API response.
type Response struct {
	Time   time.Time `json:"time"   yaml:"time"`
	Mode   Mode      `json:"mode"   yaml:"mode"`
	Status string    `json:"status" yaml:"status"`
}

// OK reports whether the envelope status is "ok". A 200 response with any
// other status still signals a failure the caller has to handle.
func (r *Response) OK() bool {
	return r != nil && r.Status == constants.StatusOK
}

// Envelope wraps a single result.
type Envelope[T any] struct {
	Response `yaml:",inline"`

	Results *T `json:"results,omitempty" yaml:"results,omitempty"`
}

// PaginationResponse wraps one page of results. Previous and Next are opaque
// links returned by the service; the client never follows them.
type PaginationResponse[T any] struct {
	Response `yaml:",inline"`

	Results  []T    `json:"results"            yaml:"results"`
	Previous string `json:"previous,omitempty" yaml:"previous,omitempty"`
	Next     string `json:"next,omitempty"     yaml:"next,omitempty"`
	Total    int64  `json:"total"              yaml:"total"`
	Page     int    `json:"page"               yaml:"page"`
	Pages    int    `json:"pages"              yaml:"pages"`
}

// HasNext reports whether the service returned a link to a following page.
func (p *PaginationResponse[T]) HasNext() bool {
	return p != nil && p.Next != ""
}

// HasPrevious reports whether the service returned a link to a preceding page.
func (p *PaginationResponse[T]) HasPrevious() bool {
	return p != nil && p.Previous != ""
}

// IsEmpty reports whether the page carries no results.
func (p *PaginationResponse[T]) IsEmpty() bool {
	return p == nil || p.Total == 0 || len(p.Results) == 0
}

// NextPage extracts the page number from the Next link.
// It returns false when there is no next page or the link carries no page parameter.
func (p *PaginationResponse[T]) NextPage() (int, bool) {
	if !p.HasNext() {
		return 0, false
	}

	return pageFromLink(p.Next)
}

func pageFromLink(link string) (int, bool) {
	parsed, err := url.Parse(link)
	if err != nil {
		return 0, false
	}

	var page int

	_, err = fmt.Sscanf(parsed.Query().Get("page"), "%d", &page)
	if err != nil || page < constants.FirstPage {
		return 0, false
	}

	return page, true
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", value, err)
	}

	return Date{Time: parsed}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON accepts YYYY-MM-DD as well as full RFC 3339 timestamps.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}

		return nil
	}

	var raw string

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	if raw == "" {
		*d = Date{}

		return nil
	}

	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("parsing date %q: %w", raw, err)
		}
	}

	d.Time = parsed

	return nil
}

// MarshalYAML renders the date as a plain YYYY-MM-DD scalar.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// EncodeValues lets Date be used as a query parameter.
func (d Date) EncodeValues(key string, values *url.Values) error {
	if d.IsZero() {
		return nil
	}

	values.Set(key, d.Format(DateLayout))

	return nil
}

// Int returns a pointer to v, for optional query parameters.
func Int(v int) *int {
	return &v
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
