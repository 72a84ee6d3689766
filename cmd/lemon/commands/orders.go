package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// NewOrdersCommand creates the orders command group
func NewOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Manage orders",
		Long:    "Place, activate and cancel orders",
	}

	cmd.AddCommand(newOrdersCreateCommand())
	cmd.AddCommand(newOrdersActivateCommand())
	cmd.AddCommand(newOrdersDeleteCommand())

	return cmd
}

func newOrdersCreateCommand() *cobra.Command {
	var (
		isin        string
		side        string
		quantity    int64
		venue       string
		expiresAt   string
		limitPrice  string
		stopPrice   string
		notes       string
		idempotency string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Place an order",
		Long: `Place an order. New orders are inactive until activated with
'lemon orders activate ORDER_ID'. Prices are in EUR, e.g. 120.50.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orderSide, err := lemon.ParseOrderSide(side)
			if err != nil {
				return err //nolint:wrapcheck
			}

			req := &lemon.OrderCreateRequest{
				ISIN:        isin,
				ExpiresAt:   expiresAt,
				Side:        orderSide,
				Quantity:    quantity,
				Venue:       venue,
				Notes:       notes,
				Idempotency: resolveIdempotency(idempotency),
			}

			req.LimitPrice, err = optionalAmount(limitPrice)
			if err != nil {
				return fmt.Errorf("invalid --limit-price: %w", err)
			}

			req.StopPrice, err = optionalAmount(stopPrice)
			if err != nil {
				return fmt.Errorf("invalid --stop-price: %w", err)
			}

			err = req.Validate()
			if err != nil {
				return err //nolint:wrapcheck
			}

			client, err := CreateTradingClient()
			if err != nil {
				return err
			}

			order, err := client.Orders().Create(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), order)
			if done {
				return err
			}

			if order.Results == nil {
				printStatus(cmd.OutOrStdout(), "Order", &order.Response)

				return nil
			}

			return renderOrder(cmd, order.Results)
		},
	}

	cmd.Flags().StringVar(&isin, "isin", "", "instrument ISIN (required)")
	cmd.Flags().StringVar(&side, "side", "", "buy or sell (required)")
	cmd.Flags().Int64Var(&quantity, "quantity", 0, "number of shares (required)")
	cmd.Flags().StringVar(&venue, "venue", "", "venue MIC, e.g. XMUN")
	cmd.Flags().StringVar(&expiresAt, "expires-at", "", "expiry date (YYYY-MM-DD) or days, e.g. 7d")
	cmd.Flags().StringVar(&limitPrice, "limit-price", "", "limit price in EUR")
	cmd.Flags().StringVar(&stopPrice, "stop-price", "", "stop price in EUR")
	cmd.Flags().StringVar(&notes, "notes", "", "free text notes")
	cmd.Flags().StringVar(&idempotency, "idempotency", "", "idempotency key, or 'auto' to generate one")

	_ = cmd.MarkFlagRequired("isin")
	_ = cmd.MarkFlagRequired("side")
	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}

func renderOrder(cmd *cobra.Command, order *lemon.Order) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Property", "Value")
	_ = table.Append("ID", order.ID)
	_ = table.Append("Status", string(order.Status))
	_ = table.Append("ISIN", order.ISIN)
	_ = table.Append("Side", string(order.Side))
	_ = table.Append("Quantity", fmt.Sprintf("%d", order.Quantity))
	_ = table.Append("Venue", order.Venue)
	_ = table.Append("Limit Price", formatOptionalAmount(order.LimitPrice))
	_ = table.Append("Stop Price", formatOptionalAmount(order.StopPrice))
	_ = table.Append("Estimated Price", formatOptionalAmount(order.EstimatedPrice))
	_ = table.Append("Charge", formatOptionalAmount(order.Charge))
	_ = table.Append("Expires", formatTime(order.ExpiresAt))
	_ = table.Append("Created", order.CreatedAt.Format(timeLayout))

	if info := order.RegulatoryInformation; info != nil {
		_ = table.Append("Entry Costs", fmt.Sprintf("%s (%s)", formatAmount(info.CostsEntry), info.CostsEntryPct))
		_ = table.Append("Yield Reduction", info.EstimatedYieldReductionTotalPct)
	}

	err := renderTable(table)
	if err != nil {
		return err
	}

	if order.Status == lemon.OrderStatusInactive {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nActivate with: lemon orders activate %s\n", order.ID)
	}

	return nil
}

func optionalAmount(value string) (*int64, error) {
	if value == "" {
		return nil, nil //nolint:nilnil
	}

	amount, err := parseAmount(value)
	if err != nil {
		return nil, err
	}

	return lemon.Int64(amount), nil
}

func newOrdersActivateCommand() *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "activate ORDER_ID",
		Short: "Activate an order",
		Long:  "Activate an inactive order so it is routed to the venue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID := args[0]

			pinValue, err := readPIN(cmd, pin)
			if err != nil {
				return err
			}

			client, err := CreateTradingClient()
			if err != nil {
				return err
			}

			resp, err := client.Orders().Activate(cmd.Context(), orderID, pinValue)
			if err != nil {
				return fmt.Errorf("failed to activate order: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), resp)
			if done {
				return err
			}

			printStatus(cmd.OutOrStdout(), "Order "+orderID+" activated", resp)

			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "account PIN (prompted when omitted)")

	return cmd
}

func newOrdersDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete ORDER_ID",
		Aliases: []string{"cancel"},
		Short:   "Cancel an order",
		Long:    "Cancel an order that has not been executed yet",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID := args[0]

			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Really cancel order %s?", orderID)) {
				return constants.ErrConfirmationDeclined
			}

			client, err := CreateTradingClient()
			if err != nil {
				return err
			}

			resp, err := client.Orders().Delete(cmd.Context(), orderID)
			if err != nil {
				return fmt.Errorf("failed to delete order: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), resp)
			if done {
				return err
			}

			printStatus(cmd.OutOrStdout(), "Order "+orderID+" deleted", resp)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
