package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haemic/bloodflow/internal/cli"
	"github.com/haemic/bloodflow/internal/store"
)

func districtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "districts <stateId>",
		Short: "List the districts of a state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, client, err := loadDeps()
			if err != nil {
				return err
			}

			locations := store.NewLocationStore(client)
			locations.FetchDistricts(ctx, args[0], false)
			if locations.DistrictsFailed() {
				return fmt.Errorf("failed to fetch districts: %s", locations.Err())
			}

			districts := locations.Districts()
			if len(districts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No districts found for state " + args[0] + "."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Districts"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() {
				_ = w.Flush()
			}()

			fmt.Fprintln(w, "ID\tNAME")
			for _, d := range districts {
				fmt.Fprintf(w, "%s\t%s\n", d.DistrictID, d.DistrictName)
			}
			return nil
		},
	}
}
