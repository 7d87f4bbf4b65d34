package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haemic/bloodflow/internal/chat"
	"github.com/haemic/bloodflow/internal/cli"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the availability assistant",
		Long: `Open a persistent chat session on the terminal. The connection redials
automatically; messages mentioning "near me" attach your configured
coordinates. Type /quit to leave.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings, _, err := loadDeps()
			if err != nil {
				return err
			}

			session := newChatSession(settings)

			var mu sync.Mutex
			printed := 0
			session.SetNotify(func() {
				mu.Lock()
				defer mu.Unlock()
				msgs := session.Messages()
				for _, msg := range msgs[printed:] {
					printChatMessage(msg)
				}
				printed = len(msgs)
			})

			go session.Run(ctx)

			fmt.Println(cli.FormatTitle("Chat"))
			fmt.Println(cli.SubtleStyle.Render("Type a question, /quit to leave."))

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print(cli.FormatPrompt(settings.ChatUsername))
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "/quit" || line == "/exit" {
					break
				}
				session.Send(ctx, line)
			}
			return scanner.Err()
		},
	}
}

func printChatMessage(msg chat.Message) {
	if msg.System {
		fmt.Println(cli.SubtleStyle.Render("· " + msg.Payload.Text))
		return
	}

	sender := msg.Sender
	if sender == "" {
		sender = "assistant"
	}
	fmt.Println(cli.BoldStyle.Render(sender) + cli.SubtleStyle.Render(" "+msg.Timestamp.Format("15:04")))

	switch msg.Payload.Kind {
	case chat.KindPlainText:
		fmt.Println(msg.Payload.Text)

	case chat.KindStateList:
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATE")
		for _, s := range msg.Payload.States {
			fmt.Fprintf(w, "%s\t%s\n", s.StateID, s.StateName)
		}
		_ = w.Flush()

	case chat.KindDistrictList:
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDISTRICT")
		for _, d := range msg.Payload.Districts {
			fmt.Fprintf(w, "%s\t%s\n", d.DistrictID, d.DistrictName)
		}
		_ = w.Flush()

	case chat.KindStockTable:
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "BANK\tADDRESS\tUNITS")
		for _, s := range msg.Payload.Stocks {
			fmt.Fprintf(w, "%s\t%s\t%d\n", s.BloodBankName, s.Address, s.TotalUnits())
		}
		_ = w.Flush()

	case chat.KindBankList, chat.KindGenericTable:
		printTable(msg.Payload.Table)

	default:
		fmt.Println(cli.SubtleStyle.Render(msg.Payload.Raw))
	}
}

func printTable(t chat.Table) {
	if len(t.Columns) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(t.Columns, "\t")))
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}
