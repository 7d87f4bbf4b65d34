package main

import (
	"github.com/spf13/cobra"

	"github.com/haemic/bloodflow/internal/tui"
)

func searchCmd() *cobra.Command {
	var (
		theme    string
		withChat bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Interactive blood stock search",
		Long: `Open the full-screen search interface: pick a state and district, narrow
by blood type, bank name, or minimum units, and watch availability
update as you type. With --chat the assistant panel connects too.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, client, err := loadDeps()
			if err != nil {
				return err
			}

			cfg := tui.Config{
				Directory: client,
				Theme:     theme,
			}
			if withChat {
				cfg.Session = newChatSession(settings)
			}

			return tui.Run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "color theme (default, catppuccin-mocha)")
	cmd.Flags().BoolVar(&withChat, "chat", true, "connect the chat assistant panel")

	return cmd
}
