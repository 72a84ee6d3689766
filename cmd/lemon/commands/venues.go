package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

// NewVenuesCommand creates the venues command group
func NewVenuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "venues",
		Aliases: []string{"venue"},
		Short:   "View trading venues",
		Long:    "List trading venues with their opening hours and days",
	}

	cmd.AddCommand(newVenuesListCommand())

	return cmd
}

func newVenuesListCommand() *cobra.Command {
	var (
		pages pageFlags
		mic   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List venues",
		Long:  "List trading venues, optionally filtered by MIC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateMarketDataClient()
			if err != nil {
				return err
			}

			list, err := client.Venues().List(cmd.Context(), &lemon.VenueListParams{
				MIC:        optionalString(mic),
				PageParams: pages.params(cmd),
			})
			if err != nil {
				return fmt.Errorf("failed to list venues: %w", err)
			}

			done, err := renderStructured(cmd.OutOrStdout(), list)
			if done {
				return err
			}

			if list.IsEmpty() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No venues found")

				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("MIC", "Name", "Open", "Hours", "Next Opening Day")

			for _, venue := range list.Results {
				open := constants.BooleanFalse
				if venue.IsOpen {
					open = constants.BooleanTrue
				}

				nextDay := constants.NotAvailable
				if len(venue.OpeningDays) > 0 {
					nextDay = venue.OpeningDays[0].String()
				}

				hours := strings.TrimSpace(fmt.Sprintf("%s-%s %s",
					venue.OpeningHours.Start, venue.OpeningHours.End, venue.OpeningHours.Timezone))

				_ = table.Append(venue.MIC, venue.Name, open, hours, nextDay)
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
	cmd.Flags().StringVar(&mic, "mic", "", "filter by MIC")

	return cmd
}
