package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/haemic/bloodflow/internal/cli"
	"github.com/haemic/bloodflow/internal/common"
	"github.com/haemic/bloodflow/internal/model"
)

func snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <stateId>",
		Short: "Aggregate availability across every district of a state",
		Long: `Fetch the stock of each district in turn and print state-wide totals
per blood group. Slow on large states; a progress bar tracks the
district sweep.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stateID := args[0]

			_, client, err := loadDeps()
			if err != nil {
				return err
			}

			districts, err := client.ListDistricts(ctx, stateID)
			if err != nil {
				return fmt.Errorf("failed to fetch districts: %w", err)
			}
			if len(districts.Districts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No districts found for state " + stateID + "."))
				return nil
			}

			bar := progressbar.NewOptions(len(districts.Districts),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Sweeping districts...[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)

			totals := make(map[string]int)
			banks := 0
			failed := 0
			for _, d := range districts.Districts {
				stock, stockErr := client.ListStock(ctx, stateID, d.DistrictID, model.BloodTypeAll)
				if stockErr != nil {
					common.LogError(stockErr, "district fetch failed", common.Fields{
						"districtId": d.DistrictID,
					})
					failed++
					_ = bar.Add(1)
					continue
				}
				for _, s := range stock.Stocks {
					banks++
					for label, count := range s.BloodGroups {
						totals[model.NormalizeBloodGroup(label)] += count
					}
				}
				_ = bar.Add(1)
			}

			fmt.Println(cli.FormatTitle("State-wide availability"))

			groups := make([]string, 0, len(totals))
			for g := range totals {
				groups = append(groups, g)
			}
			sort.Strings(groups)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "GROUP\tUNITS")
			for _, g := range groups {
				fmt.Fprintf(w, "%s\t%d\n", g, totals[g])
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(cli.FormatInfo(fmt.Sprintf("%d banks across %d districts", banks, len(districts.Districts))))
			if failed > 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("%d districts failed to respond", failed)))
			}
			return nil
		},
	}
}
