package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/haemic/bloodflow/internal/store"
	"github.com/haemic/bloodflow/internal/tui/themes"
)

// StatsPanelModel summarizes the filtered stock list.
type StatsPanelModel struct {
	theme   themes.Theme
	stats   store.Stats
	width   int
	height  int
	compact bool
}

// NewStatsPanel creates an empty stats panel.
func NewStatsPanel(theme themes.Theme) StatsPanelModel {
	return StatsPanelModel{theme: theme}
}

// SetStats replaces the displayed totals.
func (m *StatsPanelModel) SetStats(stats store.Stats) {
	m.stats = stats
}

// SetCompact sets compact mode.
func (m *StatsPanelModel) SetCompact(compact bool) {
	m.compact = compact
}

// View renders the stats panel.
func (m StatsPanelModel) View() string {
	if m.compact {
		return m.theme.Box.Render(fmt.Sprintf(
			"Units: %d | Banks: %d | Types: %d",
			m.stats.TotalUnits, m.stats.AvailableBanks, m.stats.UniqueBloodTypes,
		))
	}

	title := m.theme.Subtitle.Render("Availability")
	lines := []string{
		fmt.Sprintf("Total units:  %s", m.theme.StatusSuccess.Render(fmt.Sprintf("%d", m.stats.TotalUnits))),
		fmt.Sprintf("Banks:        %s", m.theme.Bold.Render(fmt.Sprintf("%d", m.stats.AvailableBanks))),
		fmt.Sprintf("Blood types:  %s", m.theme.Bold.Render(fmt.Sprintf("%d", m.stats.UniqueBloodTypes))),
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.theme.Normal.Render(strings.Join(lines, "\n")),
	)
}

// Resize updates the component size.
func (m *StatsPanelModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.compact = height <= 4
}
