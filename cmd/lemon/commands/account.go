package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
)

// NewAccountCommand creates the account command
func NewAccountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show account details",
		Long:  "Display the account, balances and plans of the configured API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateTradingClient()
			if err != nil {
				return err
			}

			account, err := client.Account().Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), account)
			if done {
				return err
			}

			if account.Results == nil {
				printStatus(cmd.OutOrStdout(), "Account", &account.Response)

				return nil
			}

			details := account.Results

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Property", "Value")
			_ = table.Append("Account ID", details.AccountID)
			_ = table.Append("Name", fmt.Sprintf("%s %s", details.Firstname, details.Lastname))
			_ = table.Append("Email", details.Email)
			_ = table.Append("Mode", details.Mode.String())
			_ = table.Append("Trading Plan", details.TradingPlan)
			_ = table.Append("Data Plan", details.DataPlan)
			_ = table.Append("Balance", formatAmount(details.Balance))
			_ = table.Append("Cash To Invest", formatAmount(details.CashToInvest))
			_ = table.Append("Cash To Withdraw", formatAmount(details.CashToWithdraw))
			_ = table.Append("Open Orders", formatAmount(details.AmountOpenOrders))
			_ = table.Append("Open Withdrawals", formatAmount(details.AmountOpenWithdrawals))
			_ = table.Append("Estimated Taxes", formatAmount(details.AmountEstimateTaxes))
			_ = table.Append("Tax Allowance", formatAmount(details.TaxAllowance))

			if details.IBANBrokerage != "" {
				_ = table.Append("IBAN", details.IBANBrokerage)
			}

			approved := constants.NotAvailable
			if details.ApprovedAt != nil {
				approved = details.ApprovedAt.Format(timeLayout)
			}

			_ = table.Append("Approved", approved)
			_ = table.Append("Created", details.CreatedAt.Format(timeLayout))

			return renderTable(table)
		},
	}
}
