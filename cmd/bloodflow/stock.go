package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haemic/bloodflow/internal/cli"
	"github.com/haemic/bloodflow/internal/common"
	"github.com/haemic/bloodflow/internal/model"
	"github.com/haemic/bloodflow/internal/store"
)

func stockCmd() *cobra.Command {
	var (
		districtID  string
		bloodType   string
		searchText  string
		minQuantity int
	)

	cmd := &cobra.Command{
		Use:   "stock <stateId>",
		Short: "Show live blood stock for a state",
		Long: `Fetch the current stock snapshot for a state, optionally narrowed to a
district and blood type on the server, and to a bank name/address match
and minimum unit count locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			stateID := strings.TrimSpace(args[0])
			if stateID == "" {
				return common.NewUserError("a state id is required", common.ErrNoState)
			}

			_, client, err := loadDeps()
			if err != nil {
				return err
			}

			stocks := store.NewStockStore(client)
			stocks.FetchStocks(ctx, stateID, districtID, bloodType, false)
			if stocks.Failed() {
				return fmt.Errorf("failed to fetch stock: %s", stocks.Err())
			}
			stocks.ApplyLocalFilters(searchText, minQuantity)

			filtered := stocks.Filtered()
			if len(filtered) == 0 {
				fmt.Println(cli.InfoStyle.Render("No matching stock found."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Blood Stock"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BANK\tADDRESS\tUNITS\tGROUPS")
			for _, s := range filtered {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					s.BloodBankName, s.Address, s.TotalUnits(), formatGroups(s))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := stocks.Stats()
			fmt.Println()
			fmt.Println(cli.FormatInfo(fmt.Sprintf(
				"%d units across %d banks, %d blood types",
				stats.TotalUnits, stats.AvailableBanks, stats.UniqueBloodTypes)))
			return nil
		},
	}

	cmd.Flags().StringVar(&districtID, "district", "", "district id (default: all districts)")
	cmd.Flags().StringVar(&bloodType, "type", "", "blood type (default: all types)")
	cmd.Flags().StringVar(&searchText, "search", "", "filter by bank name or address")
	cmd.Flags().IntVar(&minQuantity, "min-quantity", 0, "minimum total units per bank")

	return cmd
}

// formatGroups renders per-group counts, marking low stock.
func formatGroups(s model.BloodStock) string {
	if !s.HasComponentData() {
		return cli.SubtleStyle.Render("no data")
	}

	labels := make([]string, 0, len(s.BloodGroups))
	for label := range s.BloodGroups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		count := s.BloodGroups[label]
		cell := fmt.Sprintf("%s:%d", model.NormalizeBloodGroup(label), count)
		if model.IsLowStock(count) {
			cell = cli.WarningStyle.Render(cell)
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, " ")
}
