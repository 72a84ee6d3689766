package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// NewBankStatementsCommand creates the bank-statements command group
func NewBankStatementsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bank-statements",
		Aliases: []string{"bankstatements", "bs"},
		Short:   "View bank statements",
		Long:    "List the cash movements of the account",
	}

	cmd.AddCommand(newBankStatementsListCommand())

	return cmd
}

func newBankStatementsListCommand() *cobra.Command {
	var (
		pages         pageFlags
		statementType string
		from          string
		to            string
		sorting       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bank statements",
		Long:  "List bank statements, optionally filtered by type and date range",
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

			params := &lemon.BankStatementListParams{
				From:       fromDate,
				To:         toDate,
				Sorting:    order,
				PageParams: pages.params(cmd),
			}

			if statementType != "" {
				kind := lemon.BankStatementType(statementType)
				params.Type = &kind
			}

			client, err := CreateTradingClient()
			if err != nil {
				return err
			}

			list, err := client.BankStatements().List(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to list bank statements: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), list)
			if done {
				return err
			}

			if list.IsEmpty() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No bank statements found")

				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Date", "Type", "Amount", "ISIN", "Title", "ID")

			for _, statement := range list.Results {
				_ = table.Append(
					statement.Date.String(),
					string(statement.Type),
					formatAmount(statement.Amount),
					statement.ISIN,
					statement.ISINTitle,
					statement.ID,
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
	cmd.Flags().StringVar(&statementType, "type", "",
		"pay_in, pay_out, order_buy, order_sell, eod_balance, dividend or tax_refund")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sorting, "sorting", "", "asc or desc")

	return cmd
}
