package components

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haemic/bloodflow/internal/model"
	"github.com/haemic/bloodflow/internal/tui/themes"
	"github.com/haemic/bloodflow/internal/window"
)

// cardHeight is the uniform rendered height of one stock card in
// terminal lines.
const cardHeight = 4

// StockListModel renders the filtered stock list. Only the cards
// intersecting the scroll viewport are materialized; the rest of the
// list exists as scroll geometry.
type StockListModel struct {
	theme        themes.Theme
	stocks       []model.BloodStock
	win          window.Config
	cursor       int
	scrollOffset int
	width        int
	height       int
	loading      bool
	errText      string
}

// StockSelectedMsg is sent when a stock card is chosen.
type StockSelectedMsg struct {
	Stock model.BloodStock
	Index int
}

// NewStockList creates an empty stock list.
func NewStockList(theme themes.Theme) StockListModel {
	return StockListModel{
		theme:  theme,
		win:    window.Config{ItemHeight: cardHeight, Buffer: 2},
		width:  80,
		height: 24,
	}
}

// SetStocks replaces the rendered list and returns the cursor to the
// top.
func (m *StockListModel) SetStocks(stocks []model.BloodStock) {
	m.stocks = stocks
	m.cursor = 0
	m.scrollOffset = 0
}

// SetLoading toggles the loading indicator.
func (m *StockListModel) SetLoading(loading bool) {
	m.loading = loading
}

// SetError sets the error line, empty clears it.
func (m *StockListModel) SetError(text string) {
	m.errText = text
}

// VisibleRange returns the index window currently materialized.
func (m StockListModel) VisibleRange() window.Range {
	return m.win.Compute(m.scrollOffset, m.viewportHeight()).Clamp(len(m.stocks))
}

// Update handles messages.
func (m StockListModel) Update(msg tea.Msg) (StockListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	perPage := max(1, m.viewportHeight()/cardHeight)

	switch keyMsg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "pgdown", "ctrl+f":
		m.moveCursor(perPage)
	case "pgup", "ctrl+b":
		m.moveCursor(-perPage)
	case "g", "home":
		m.cursor = 0
		m.ensureVisible()
	case "G", "end":
		m.cursor = len(m.stocks) - 1
		m.ensureVisible()
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.stocks) {
			stock := m.stocks[m.cursor]
			idx := m.cursor
			return m, func() tea.Msg {
				return StockSelectedMsg{Stock: stock, Index: idx}
			}
		}
	}

	return m, nil
}

func (m *StockListModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.stocks) {
		m.cursor = len(m.stocks) - 1
	}
	m.ensureVisible()
}

// ensureVisible scrolls just far enough to keep the cursor's card
// inside the viewport.
func (m *StockListModel) ensureVisible() {
	if m.cursor < 0 {
		return
	}
	top := m.win.OffsetFor(m.cursor)
	bottom := top + cardHeight
	vh := m.viewportHeight()

	if top < m.scrollOffset {
		m.scrollOffset = top
	}
	if bottom > m.scrollOffset+vh {
		m.scrollOffset = bottom - vh
	}
}

// View renders the list.
func (m StockListModel) View() string {
	header := m.renderHeader()

	var body string
	switch {
	case m.errText != "":
		body = m.theme.StatusError.Render(m.errText)
	case m.loading:
		body = m.theme.StatusPending.Render("Fetching stock...")
	case len(m.stocks) == 0:
		body = lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No stock to show. Pick a state in the filters.")
	default:
		body = m.renderCards()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m StockListModel) renderHeader() string {
	title := m.theme.Title.Render("Blood Banks")
	status := fmt.Sprintf("%d banks", len(m.stocks))
	if len(m.stocks) > 0 {
		r := m.VisibleRange()
		status += fmt.Sprintf("  (showing %d-%d)", r.Start+1, r.End)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.Subtitle.Render(status))
}

func (m StockListModel) renderCards() string {
	r := m.VisibleRange()
	visible := window.Slice(m.stocks, r)
	cards := make([]string, 0, len(visible))
	for i, stock := range visible {
		cards = append(cards, m.renderCard(stock, r.Start+i == m.cursor))
	}
	return strings.Join(cards, "\n")
}

func (m StockListModel) renderCard(stock model.BloodStock, selected bool) string {
	name := stock.BloodBankName
	if stock.Distance != nil {
		name += fmt.Sprintf("  (%.1f km)", *stock.Distance)
	}

	nameStyle := m.theme.Bold
	if selected {
		nameStyle = m.theme.Selected
	}

	address := stock.Address
	if stock.Contact != "" {
		address += "  ☎ " + stock.Contact
	}

	lines := []string{
		nameStyle.Render(truncate(name, m.width-2)),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(truncate(address, m.width-2)),
		m.renderGroups(stock),
	}
	return strings.Join(lines, "\n") + "\n"
}

// renderGroups shows per-group unit counts, flagging low stock.
func (m StockListModel) renderGroups(stock model.BloodStock) string {
	if !stock.HasComponentData() {
		return m.theme.StatusPending.Render("no component data")
	}

	labels := make([]string, 0, len(stock.BloodGroups))
	for label := range stock.BloodGroups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		count := stock.BloodGroups[label]
		cell := fmt.Sprintf("%s:%d", model.NormalizeBloodGroup(label), count)
		if model.IsLowStock(count) {
			cell = m.theme.StatusWarning.Render(cell)
		} else {
			cell = m.theme.StatusSuccess.Render(cell)
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, "  ")
}

func (m StockListModel) viewportHeight() int {
	// Header takes three lines.
	return max(cardHeight, m.height-3)
}

// Resize updates the component size.
func (m *StockListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// truncate trims to maxLen runes so multibyte bank names never get cut
// mid-character.
func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
