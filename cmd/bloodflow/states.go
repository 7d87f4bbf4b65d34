package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haemic/bloodflow/internal/cli"
	"github.com/haemic/bloodflow/internal/store"
)

func statesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List all states in the directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, client, err := loadDeps()
			if err != nil {
				return err
			}

			locations := store.NewLocationStore(client)
			locations.FetchStates(ctx, false)
			if locations.StatesFailed() {
				return fmt.Errorf("failed to fetch states: %s", locations.Err())
			}

			states := locations.States()
			if len(states) == 0 {
				fmt.Println(cli.InfoStyle.Render("The directory returned no states."))
				return nil
			}

			fmt.Println(cli.FormatTitle("States"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() {
				_ = w.Flush()
			}()

			fmt.Fprintln(w, "ID\tNAME\tCODE")
			for _, s := range states {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.StateID, s.StateName, s.StateCode)
			}
			return nil
		},
	}
}
