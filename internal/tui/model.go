// Package tui implements the interactive blood stock search screen: a
// windowed bank list driven by the filter, location, and stock stores,
// with an optional chat overlay.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haemic/bloodflow/internal/chat"
	"github.com/haemic/bloodflow/internal/store"
	"github.com/haemic/bloodflow/internal/tui/components"
	"github.com/haemic/bloodflow/internal/tui/themes"
)

// Focus identifies which panel receives key input.
type Focus int

const (
	FocusList Focus = iota
	FocusFilter
	FocusChat
	FocusHelp
)

// Model holds the main TUI state.
type Model struct {
	ctx       context.Context
	theme     themes.Theme
	keymap    KeyMap
	filters   *store.FilterStore
	locations *store.LocationStore
	stocks    *store.StockStore
	session   *chat.Session

	filterPanel components.FilterPanelModel
	stockList   components.StockListModel
	statsPanel  components.StatsPanelModel
	chatView    components.ChatViewModel

	width    int
	height   int
	focus    Focus
	ready    bool
	quitting bool
}

// newModel creates a model over the given stores. session may be nil
// when chat is not configured.
func newModel(ctx context.Context, cfg Config, filters *store.FilterStore, locations *store.LocationStore, stocks *store.StockStore) Model {
	theme := themes.GetTheme(cfg.Theme)
	return Model{
		ctx:         ctx,
		theme:       theme,
		keymap:      DefaultKeyMap(),
		filters:     filters,
		locations:   locations,
		stocks:      stocks,
		session:     cfg.Session,
		filterPanel: components.NewFilterPanel(theme),
		stockList:   components.NewStockList(theme),
		statsPanel:  components.NewStatsPanel(theme),
		chatView:    components.NewChatView(theme),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.fetchStates(false),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if newModel, cmd, handled := m.handleGlobalKeys(msg); handled {
			return newModel, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.handleResize()

	case statesLoadedMsg:
		m.filterPanel.SetStates(m.locations.States())

	case districtsLoadedMsg:
		m.filterPanel.SetDistricts(m.locations.Districts())

	case stocksLoadedMsg:
		// The fetch replaced the filtered list with the raw response;
		// re-run the local pass so active filters survive a refetch.
		criteria := m.filters.Criteria()
		m.stocks.ApplyLocalFilters(criteria.SearchText, criteria.MinQuantity)
		m.refreshStockViews()

	case components.StateChangedMsg:
		m.filters.SetStateID(msg.StateID)
		m.stockList.SetLoading(true)
		cmds = append(cmds,
			m.fetchDistricts(msg.StateID, false),
			m.fetchStocks(false),
		)

	case components.DistrictChangedMsg:
		m.filters.SetDistrictID(msg.DistrictID)
		m.stockList.SetLoading(true)
		cmds = append(cmds, m.fetchStocks(false))

	case components.BloodTypeChangedMsg:
		m.filters.SetBloodType(msg.BloodType)
		m.stockList.SetLoading(true)
		cmds = append(cmds, m.fetchStocks(false))

	case components.LocalFilterChangedMsg:
		m.filters.SetSearchText(msg.SearchText)
		m.filters.SetMinQuantity(msg.MinQuantity)
		m.stocks.ApplyLocalFilters(msg.SearchText, msg.MinQuantity)
		m.refreshStockViews()

	case components.FilterDoneMsg:
		m.focus = FocusList

	case components.ChatSendMsg:
		if m.session != nil {
			cmds = append(cmds, m.sendChat(msg.Text))
		}

	case chatEventMsg, chatSentMsg:
		if m.session != nil {
			m.chatView.SetSession(m.session.Messages(), m.session.Status(), m.session.Typing())
		}
	}

	// Delegate to the focused component.
	switch m.focus {
	case FocusList:
		newList, cmd := m.stockList.Update(msg)
		m.stockList = newList
		cmds = append(cmds, cmd)
		m.stocks.SetVisibleRange(m.stockList.VisibleRange())

	case FocusFilter:
		newPanel, cmd := m.filterPanel.Update(msg)
		m.filterPanel = newPanel
		cmds = append(cmds, cmd)

	case FocusChat:
		newChat, cmd := m.chatView.Update(msg)
		m.chatView = newChat
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleGlobalKeys handles keys that work in any state. Returns handled
// false to let the focused component see the key.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit, true
	}

	// Text fields own everything except control keys.
	typing := m.focus == FocusChat || m.focus == FocusFilter
	if typing && key != "esc" {
		return m, nil, false
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit, true

	case "?":
		if m.focus == FocusHelp {
			m.focus = FocusList
		} else {
			m.focus = FocusHelp
		}
		return m, nil, true

	case "esc":
		m.filterPanel.Blur()
		m.chatView.Blur()
		m.focus = FocusList
		return m, nil, true

	case "f", "tab":
		m.focus = FocusFilter
		return m, m.filterPanel.Focus(), true

	case "c":
		if m.session != nil {
			m.focus = FocusChat
			m.chatView.SetSession(m.session.Messages(), m.session.Status(), m.session.Typing())
			return m, m.chatView.Focus(), true
		}

	case "ctrl+r":
		m.stockList.SetLoading(true)
		return m, tea.Batch(
			m.fetchStates(true),
			m.fetchStocks(true),
		), true

	case "ctrl+x":
		m.filters.ClearFilters(true)
		m.filterPanel.Reset(true)
		m.stocks.ApplyLocalFilters("", 0)
		m.stockList.SetLoading(true)
		return m, m.fetchStocks(false), true
	}

	return m, nil, false
}

// refreshStockViews re-snapshots the stock store into the components.
func (m *Model) refreshStockViews() {
	m.stockList.SetStocks(m.stocks.Filtered())
	m.stockList.SetLoading(m.stocks.Loading())
	m.stockList.SetError(m.stocks.Err())
	m.statsPanel.SetStats(m.stocks.Stats())
	m.filterPanel.SetBloodTypes(m.stocks.BloodTypes())
	m.stocks.SetVisibleRange(m.stockList.VisibleRange())
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	sidebar := m.width / 3
	if sidebar < 30 {
		sidebar = 30
	}
	main := m.width - sidebar - 2

	m.stockList.Resize(main, m.height-2)
	m.filterPanel.Resize(sidebar, m.height/2)
	m.statsPanel.Resize(sidebar, m.height/3)
	m.chatView.Resize(main, m.height-2)
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}
	if m.focus == FocusHelp {
		return m.renderHelp()
	}

	var main string
	if m.focus == FocusChat {
		main = m.chatView.View()
	} else {
		main = m.stockList.View()
	}

	sidebar := lipgloss.JoinVertical(
		lipgloss.Left,
		m.filterPanel.View(),
		"",
		m.statsPanel.View(),
	)

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(m.width-m.sidebarWidth()-2).Render(main),
		m.theme.BorderedBox.Width(m.sidebarWidth()).Render(sidebar),
	)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m Model) sidebarWidth() int {
	sidebar := m.width / 3
	if sidebar < 30 {
		sidebar = 30
	}
	return sidebar
}

func (m Model) renderFooter() string {
	parts := make([]string, 0, 8)
	for _, b := range m.keymap.ShortHelp() {
		parts = append(parts, fmt.Sprintf("[%s] %s", b.Help().Key, b.Help().Desc))
	}
	parts = append(parts, "[?] help")
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(parts, "  "))
}

func (m Model) renderHelp() string {
	lines := []string{m.theme.Title.Render("Help")}
	for _, group := range m.keymap.FullHelp() {
		for _, b := range group {
			lines = append(lines, fmt.Sprintf("%-12s %s", b.Help().Key, b.Help().Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? to close."))
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
