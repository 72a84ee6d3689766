package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// NewInstrumentsCommand creates the instruments command group
func NewInstrumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instruments",
		Aliases: []string{"instrument", "inst"},
		Short:   "Search instruments",
		Long:    "Search the tradable instruments of the market data API",
	}

	cmd.AddCommand(newInstrumentsListCommand())

	return cmd
}

func newInstrumentsListCommand() *cobra.Command {
	var (
		pages          pageFlags
		isin           string
		search         string
		instrumentType string
		mic            string
		currency       string
		tradable       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List instruments",
		Long:  "List instruments by ISIN, search term, type, venue or currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := &lemon.InstrumentListParams{
				ISIN:       optionalString(isin),
				Search:     optionalString(search),
				MIC:        optionalString(mic),
				Currency:   optionalString(currency),
				PageParams: pages.params(cmd),
			}

			if instrumentType != "" {
				kind := lemon.InstrumentType(instrumentType)
				params.Type = &kind
			}

			if cmd.Flags().Changed("tradable") {
				params.Tradable = lemon.Bool(tradable)
			}

			client, err := CreateMarketDataClient()
			if err != nil {
				return err
			}

			list, err := client.Instruments().List(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to list instruments: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), list)
			if done {
				return err
			}

			if list.IsEmpty() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No instruments found")

				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("ISIN", "WKN", "Name", "Symbol", "Type", "Venues")

			for _, instrument := range list.Results {
				venues := make([]string, 0, len(instrument.Venues))
				for _, venue := range instrument.Venues {
					venues = append(venues, venue.MIC)
				}

				_ = table.Append(
					instrument.ISIN,
					instrument.WKN,
					instrument.Name,
					instrument.Symbol,
					string(instrument.Type),
					strings.Join(venues, ", "),
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
	cmd.Flags().StringVarP(&search, "search", "s", "", "search by name, title, symbol, ISIN or WKN")
	cmd.Flags().StringVar(&instrumentType, "type", "", "stock, bond, fund, etf or warrant")
	cmd.Flags().StringVar(&mic, "mic", "", "filter by venue MIC")
	cmd.Flags().StringVar(&currency, "currency", "", "filter by trading currency")
	cmd.Flags().BoolVar(&tradable, "tradable", false, "only tradable (or, with =false, untradable) instruments")

	return cmd
}
