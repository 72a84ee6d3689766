package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

const timeLayout = "2006-01-02 15:04:05"

// renderStructured writes data as JSON or YAML. It reports false when the
// configured format is a table and the caller has to render one itself.
func renderStructured(out io.Writer, data interface{}) (bool, error) {
	switch format := viper.GetString(KeyOutput); format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return true, encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(constants.JSONIndentSize)

		defer func() { _ = encoder.Close() }()

		return true, encoder.Encode(data)
	case constants.FormatTable, "":
		return false, nil
	default:
		return true, fmt.Errorf("%w: %s", constants.ErrUnsupportedOut, format)
	}
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func printPagination[T any](out io.Writer, page *lemon.PaginationResponse[T]) {
	_, _ = fmt.Fprintf(out, "\n"+constants.PaginationSummary+"\n", page.Page, page.Pages, page.Total)

	if next, ok := page.NextPage(); ok {
		_, _ = fmt.Fprintf(out, "Use --page %d to see more results\n", next)
	}
}

func printStatus(out io.Writer, action string, resp *lemon.Response) {
	if resp.OK() {
		_, _ = fmt.Fprintf(out, "%s: ok\n", action)

		return
	}

	_, _ = fmt.Fprintf(out, "%s: status %q\n", action, resp.Status)
}

// formatAmount renders a wire amount (hundredths of a cent) in currency units.
func formatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	units := amount / constants.AmountScale
	cents := (amount % constants.AmountScale) / (constants.AmountScale / 100)

	return fmt.Sprintf("%s%d.%02d", sign, units, cents)
}

func formatOptionalAmount(amount *int64) string {
	if amount == nil {
		return constants.NotAvailable
	}

	return formatAmount(*amount)
}

// parseAmount converts a decimal currency amount such as "12.50" to the wire unit.
func parseAmount(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, constants.ErrInvalidAmount
	}

	whole, fraction, _ := strings.Cut(value, ".")

	digits := len(strconv.Itoa(constants.AmountScale)) - 1
	if len(fraction) > digits {
		return 0, fmt.Errorf("%w: %q has more than %d decimals", constants.ErrInvalidAmount, value, digits)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidAmount, value)
	}

	var part int64

	if fraction != "" {
		part, err = strconv.ParseInt(fraction+strings.Repeat("0", digits-len(fraction)), 10, 64)
		if err != nil || part < 0 {
			return 0, fmt.Errorf("%w: %q", constants.ErrInvalidAmount, value)
		}
	}

	return units*constants.AmountScale + part, nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format(timeLayout)
}
