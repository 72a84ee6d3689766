package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

type pageFlags struct {
	limit int
	page  int
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.limit, "limit", 0, "results per page")
	cmd.Flags().IntVar(&p.page, "page", 0, "page number, starting at 1")
}

// params only sets the values the user passed explicitly.
func (p *pageFlags) params(cmd *cobra.Command) lemon.PageParams {
	var params lemon.PageParams

	if cmd.Flags().Changed("limit") {
		params.Limit = lemon.Int(p.limit)
	}

	if cmd.Flags().Changed("page") {
		params.Page = lemon.Int(p.page)
	}

	return params
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}

	return lemon.String(value)
}

func optionalDate(value string) (*lemon.Date, error) {
	if value == "" {
		return nil, nil //nolint:nilnil
	}

	date, err := lemon.ParseDate(value)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &date, nil
}

func dateRange(from, to string) (*lemon.Date, *lemon.Date, error) {
	fromDate, err := optionalDate(from)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --from: %w", err)
	}

	toDate, err := optionalDate(to)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --to: %w", err)
	}

	return fromDate, toDate, nil
}

// ErrInvalidSorting is returned for a --sorting value other than asc or desc.
var ErrInvalidSorting = errors.New("sorting must be asc or desc")

func parseSorting(value string) (*lemon.Sorting, error) {
	switch strings.ToLower(strings.TrimSuffix(value, "_")) {
	case "":
		return nil, nil //nolint:nilnil
	case "asc":
		sorting := lemon.SortingAscending

		return &sorting, nil
	case "desc":
		sorting := lemon.SortingDescending

		return &sorting, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSorting, value)
	}
}
