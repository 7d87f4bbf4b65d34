package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haemic/bloodflow/internal/chat"
	"github.com/haemic/bloodflow/internal/directory"
	"github.com/haemic/bloodflow/internal/store"
)

// Config holds the dependencies of the search screen.
type Config struct {
	// Directory is the remote blood bank directory client.
	Directory *directory.Client
	// Session is the persistent chat session. nil disables the chat
	// panel.
	Session *chat.Session
	// Theme selects a theme by name; empty uses the default.
	Theme string
}

// Run starts the interactive search screen and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Directory == nil {
		return fmt.Errorf("directory client is required")
	}

	filters := store.NewFilterStore()
	locations := store.NewLocationStore(cfg.Directory)
	stocks := store.NewStockStore(cfg.Directory)

	p := tea.NewProgram(
		newModel(ctx, cfg, filters, locations, stocks),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if cfg.Session != nil {
		cfg.Session.SetNotify(func() {
			p.Send(chatEventMsg{})
		})
		go cfg.Session.Run(ctx)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("search screen failed: %w", err)
	}
	return nil
}
