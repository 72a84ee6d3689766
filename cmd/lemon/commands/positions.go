package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// NewPositionsCommand creates the positions command group
func NewPositionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "positions",
		Aliases: []string{"position", "pos"},
		Short:   "View positions",
		Long:    "List held positions, their performance and position statements",
	}

	cmd.AddCommand(newPositionsListCommand())
	cmd.AddCommand(newPositionsPerformanceCommand())
	cmd.AddCommand(newPositionsStatementsCommand())

	return cmd
}

func newPositionsListCommand() *cobra.Command {
	var (
		pages pageFlags
		isin  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List positions",
		Long:  "List the instruments currently held",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateTradingClient()
			if err != nil {
				return err
			}

			list, err := client.Positions().List(cmd.Context(), &lemon.PositionListParams{
				ISIN:       optionalString(isin),
				PageParams: pages.params(cmd),
			})
			if err != nil {
				return fmt.Errorf("failed to list positions: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), list)
			if done {
				return err
			}

			if list.IsEmpty() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No positions found")

				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("ISIN", "Title", "Quantity", "Avg Buy Price", "Est. Price", "Est. Total")

			for _, position := range list.Results {
				_ = table.Append(
					position.ISIN,
					position.ISINTitle,
					fmt.Sprintf("%d", position.Quantity),
					formatAmount(position.BuyPriceAvg),
					formatAmount(position.EstimatedPrice),
					formatAmount(position.EstimatedPriceTotal),
				)
			}

			err = renderTable(table)
			if err != nil {
				return err
			}

			printPagination(cmd.OutOrStdout(), list)

			return nil
		},
	}

	pages.register(cmd)
	cmd.Flags().StringVar(&isin, "isin", "", "filter by ISIN")

	return cmd
}

func newPositionsPerformanceCommand() *cobra.Command {
	var (
		pages   pageFlags
		isin    string
		from    string
		to      string
		sorting string
	)

	cmd := &cobra.Command{
		Use:   "performance",
		Short: "Show position performance",
		Long:  "Show realised profit and loss per position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, toDate, err := dateRange(from, to)
			if err != nil {
				return err
			}

			order, err := parseSorting(sorting)
			if err != nil {
				return err
			}

			client, err := CreateTradingClient()
			if err != nil {
				return err
			}

			list, err := client.Positions().Performance(cmd.Context(), &lemon.PositionPerformanceParams{
				ISIN:       optionalString(isin),
				From:       fromDate,
				To:         toDate,
				Sorting:    order,
				PageParams: pages.params(cmd),
			})
			if err != nil {
				return fmt.Errorf("failed to get position performance: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), list)
			if done {
				return err
			}

			if list.IsEmpty() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No performance data found")

				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("ISIN", "Title", "Profit", "Loss", "Fees", "Bought", "Sold", "Open", "Opened", "Closed")

			for _, performance := range list.Results {
				_ = table.Append(
					performance.ISIN,
					performance.ISINTitle,
					formatAmount(performance.Profit),
					formatAmount(performance.Loss),
					formatAmount(performance.Fees),
					fmt.Sprintf("%d", performance.QuantityBought),
					fmt.Sprintf("%d", performance.QuantitySold),
					fmt.Sprintf("%d", performance.QuantityOpen),
					formatTime(performance.OpenedAt),
					formatTime(performance.ClosedAt),
				)
			}

			err = renderTable(table)
			if err != nil {
				return err
			}

			printPagination(cmd.OutOrStdout(), list)

			return nil
		},
	}

	pages.register(cmd)
	cmd.Flags().StringVar(&isin, "isin", "", "filter by ISIN")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sorting, "sorting", "", "asc or desc")

	return cmd
}

func newPositionsStatementsCommand() *cobra.Command {
	var (
		pages   pageFlags
		isin    string
		types   []string
		from    string
		to      string
		sorting string
	)

	cmd := &cobra.Command{
		Use:   "statements",
		Short: "List position statements",
		Long:  "List the events that changed positions: orders, splits, imports and SNX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, toDate, err := dateRange(from, to)
			if err != nil {
				return err
			}

			order, err := parseSorting(sorting)
			if err != nil {
				return err
			}

			params := &lemon.StatementListParams{
				ISIN:       optionalString(isin),
				From:       fromDate,
				To:         toDate,
				Sorting:    order,
				PageParams: pages.params(cmd),
			}

			for _, kind := range types {
				params.Types = append(params.Types, lemon.StatementType(kind))
			}

			client, err := CreateTradingClient()
			if err != nil {
				return err
			}

			list, err := client.Positions().Statements(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to list statements: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), list)
			if done {
				return err
			}

			if list.IsEmpty() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No statements found")

				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Date", "Type", "ISIN", "Title", "Quantity", "Order ID")

			for _, statement := range list.Results {
				_ = table.Append(
					statement.Date.String(),
					string(statement.Type),
					statement.ISIN,
					statement.ISINTitle,
					fmt.Sprintf("%d", statement.Quantity),
					statement.OrderID,
				)
			}

			err = renderTable(table)
			if err != nil {
				return err
			}

			printPagination(cmd.OutOrStdout(), list)

			return nil
		},
	}

	pages.register(cmd)
	cmd.Flags().StringVar(&isin, "isin", "", "filter by ISIN")
	cmd.Flags().StringSliceVar(&types, "types", nil, "order_buy, order_sell, split, import, snx")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sorting, "sorting", "", "asc or desc")

	return cmd
}
