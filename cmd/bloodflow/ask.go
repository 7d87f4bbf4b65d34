package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haemic/bloodflow/internal/assist"
	"github.com/haemic/bloodflow/internal/cli"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message...>",
		Short: "Ask the availability assistant one question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, _, err := loadDeps()
			if err != nil {
				return err
			}

			session := assist.NewSession(assist.NewClient(settings.ChatBasePath), nil)
			session.Send(cmd.Context(), strings.Join(args, " "))

			msgs := session.Messages()
			reply := msgs[len(msgs)-1].Text
			if reply == assist.FallbackReply {
				fmt.Println(cli.FormatWarning(reply))
				return nil
			}

			fmt.Println(cli.InfoStyle.Render(reply))
			return nil
		},
	}
}
