package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// NewWithdrawalsCommand creates the withdrawals command group
func NewWithdrawalsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "withdrawals",
		Aliases: []string{"withdrawal", "wd"},
		Short:   "Manage withdrawals",
		Long:    "List withdrawals and request payouts to the reference account",
	}

	cmd.AddCommand(newWithdrawalsListCommand())
	cmd.AddCommand(newWithdrawalsCreateCommand())

	return cmd
}

func newWithdrawalsListCommand() *cobra.Command {
	var pages pageFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List withdrawals",
		Long:  "List the withdrawals of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateTradingClient()
			if err != nil {
				return err
			}

			list, err := client.Withdrawals().List(cmd.Context(), &lemon.WithdrawalListParams{
				PageParams: pages.params(cmd),
			})
			if err != nil {
				return fmt.Errorf("failed to list withdrawals: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), list)
			if done {
				return err
			}

			if list.IsEmpty() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No withdrawals found")

				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("ID", "Amount", "Created", "Date", "Idempotency")

			for _, withdrawal := range list.Results {
				_ = table.Append(
					withdrawal.ID,
					formatAmount(withdrawal.Amount),
					withdrawal.CreatedAt.Format(timeLayout),
					formatTime(withdrawal.Date),
					withdrawal.Idempotency,
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

	return cmd
}

func newWithdrawalsCreateCommand() *cobra.Command {
	var (
		amount      string
		pin         string
		idempotency string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Request a withdrawal",
		Long:  "Request a payout of --amount (in EUR, e.g. 100.50) to the reference bank account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wireAmount, err := parseAmount(amount)
			if err != nil {
				return err
			}

			if wireAmount <= 0 {
				return constants.ErrInvalidAmount
			}

			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Withdraw %s EUR?", formatAmount(wireAmount))) {
				return constants.ErrConfirmationDeclined
			}

			pinValue, err := readPIN(cmd, pin)
			if err != nil {
				return err
			}

			client, err := CreateTradingClient()
			if err != nil {
				return err
			}

			resp, err := client.Withdrawals().Create(cmd.Context(), &lemon.WithdrawalCreateRequest{
				Amount:      wireAmount,
				PIN:         pinValue,
				Idempotency: resolveIdempotency(idempotency),
			})
			if err != nil {
				return fmt.Errorf("failed to create withdrawal: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), resp)
			if done {
				return err
			}

			printStatus(cmd.OutOrStdout(), "Withdrawal requested", resp)

			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount in EUR (required)")
	cmd.Flags().StringVar(&pin, "pin", "", "account PIN (prompted when omitted)")
	cmd.Flags().StringVar(&idempotency, "idempotency", "", "idempotency key, or 'auto' to generate one")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
