// Package components contains the composable bubbletea models the
// search TUI is assembled from.
package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haemic/bloodflow/internal/model"
	"github.com/haemic/bloodflow/internal/tui/themes"
)

// Filter panel fields, in traversal order.
type filterField int

const (
	fieldState filterField = iota
	fieldDistrict
	fieldBloodType
	fieldSearch
	fieldMinQuantity
	fieldCount
)

// StateChangedMsg is sent when a different state is selected.
type StateChangedMsg struct {
	StateID string
}

// DistrictChangedMsg is sent when a different district is selected.
type DistrictChangedMsg struct {
	DistrictID string
}

// BloodTypeChangedMsg is sent when a different blood type is selected.
type BloodTypeChangedMsg struct {
	BloodType string
}

// LocalFilterChangedMsg is sent when the search text or minimum
// quantity changes. These filters apply locally, without a refetch.
type LocalFilterChangedMsg struct {
	SearchText  string
	MinQuantity int
}

// FilterDoneMsg is sent when the user leaves the filter panel.
type FilterDoneMsg struct{}

// FilterPanelModel edits the search criteria: state, district, and
// blood type selectors plus free-text search and a minimum unit count.
type FilterPanelModel struct {
	theme       themes.Theme
	states      []model.State
	districts   []model.District
	bloodTypes  []string
	searchInput textinput.Model
	minInput    textinput.Model
	field       filterField
	stateIdx    int
	districtIdx int
	typeIdx     int
	width       int
	height      int
}

// NewFilterPanel creates an empty filter panel.
func NewFilterPanel(theme themes.Theme) FilterPanelModel {
	search := textinput.New()
	search.Placeholder = "Bank name or address..."
	search.CharLimit = 60

	minQty := textinput.New()
	minQty.Placeholder = "0"
	minQty.CharLimit = 4

	return FilterPanelModel{
		theme:       theme,
		searchInput: search,
		minInput:    minQty,
		stateIdx:    -1,
		width:       40,
		height:      20,
	}
}

// SetStates replaces the state choices.
func (m *FilterPanelModel) SetStates(states []model.State) {
	m.states = states
	if m.stateIdx >= len(states) {
		m.stateIdx = -1
	}
}

// SetDistricts replaces the district choices and returns the selection
// to "all districts".
func (m *FilterPanelModel) SetDistricts(districts []model.District) {
	m.districts = districts
	m.districtIdx = 0
}

// SetBloodTypes replaces the blood type choices observed in the current
// stock list.
func (m *FilterPanelModel) SetBloodTypes(types []string) {
	m.bloodTypes = types
	if m.typeIdx > len(types) {
		m.typeIdx = 0
	}
}

// Reset clears every editable field back to its default.
func (m *FilterPanelModel) Reset(keepState bool) {
	if !keepState {
		m.stateIdx = -1
	}
	m.districtIdx = 0
	m.typeIdx = 0
	m.searchInput.SetValue("")
	m.minInput.SetValue("")
}

// Focus prepares the panel for input.
func (m *FilterPanelModel) Focus() tea.Cmd {
	m.field = fieldState
	return m.syncInputFocus()
}

// Blur releases input focus.
func (m *FilterPanelModel) Blur() {
	m.searchInput.Blur()
	m.minInput.Blur()
}

// Update handles messages.
func (m FilterPanelModel) Update(msg tea.Msg) (FilterPanelModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "enter":
		m.Blur()
		return m, func() tea.Msg { return FilterDoneMsg{} }

	case "up", "shift+tab":
		m.field = (m.field + fieldCount - 1) % fieldCount
		return m, m.syncInputFocus()

	case "down", "tab":
		m.field = (m.field + 1) % fieldCount
		return m, m.syncInputFocus()

	case "left":
		if cmd := m.cycle(-1); cmd != nil {
			return m, cmd
		}

	case "right":
		if cmd := m.cycle(1); cmd != nil {
			return m, cmd
		}
	}

	switch m.field {
	case fieldSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, tea.Batch(cmd, m.emitLocal())
	case fieldMinQuantity:
		var cmd tea.Cmd
		m.minInput, cmd = m.minInput.Update(msg)
		return m, tea.Batch(cmd, m.emitLocal())
	}

	return m, nil
}

// cycle steps the focused selector by delta and emits the matching
// change message. Returns nil for text fields, which handle arrows
// themselves.
func (m *FilterPanelModel) cycle(delta int) tea.Cmd {
	switch m.field {
	case fieldState:
		if len(m.states) == 0 {
			return nil
		}
		m.stateIdx = wrap(m.stateIdx+delta, len(m.states))
		stateID := m.states[m.stateIdx].StateID
		return func() tea.Msg { return StateChangedMsg{StateID: stateID} }

	case fieldDistrict:
		// Index 0 is "all districts".
		m.districtIdx = wrap(m.districtIdx+delta, len(m.districts)+1)
		districtID := model.DistrictAny
		if m.districtIdx > 0 {
			districtID = m.districts[m.districtIdx-1].DistrictID
		}
		return func() tea.Msg { return DistrictChangedMsg{DistrictID: districtID} }

	case fieldBloodType:
		// Index 0 is "all types".
		m.typeIdx = wrap(m.typeIdx+delta, len(m.bloodTypes)+1)
		bloodType := ""
		if m.typeIdx > 0 {
			bloodType = m.bloodTypes[m.typeIdx-1]
		}
		return func() tea.Msg { return BloodTypeChangedMsg{BloodType: bloodType} }
	}
	return nil
}

func (m *FilterPanelModel) emitLocal() tea.Cmd {
	search := m.searchInput.Value()
	minQty, _ := strconv.Atoi(strings.TrimSpace(m.minInput.Value()))
	return func() tea.Msg {
		return LocalFilterChangedMsg{SearchText: search, MinQuantity: minQty}
	}
}

func (m *FilterPanelModel) syncInputFocus() tea.Cmd {
	m.searchInput.Blur()
	m.minInput.Blur()
	switch m.field {
	case fieldSearch:
		m.searchInput.Focus()
		return textinput.Blink
	case fieldMinQuantity:
		m.minInput.Focus()
		return textinput.Blink
	}
	return nil
}

// View renders the filter panel.
func (m FilterPanelModel) View() string {
	rows := []string{
		m.theme.Subtitle.Render("Filters"),
		m.renderSelector(fieldState, "State", m.stateLabel()),
		m.renderSelector(fieldDistrict, "District", m.districtLabel()),
		m.renderSelector(fieldBloodType, "Blood type", m.typeLabel()),
		m.renderInput(fieldSearch, "Search", m.searchInput.View()),
		m.renderInput(fieldMinQuantity, "Min units", m.minInput.View()),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[←→] change  [↑↓] field  [Esc] done"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m FilterPanelModel) renderSelector(f filterField, label, value string) string {
	line := fmt.Sprintf("%-11s ◂ %s ▸", label+":", value)
	if m.field == f {
		return m.theme.Selected.Render(line)
	}
	return m.theme.Normal.Render(line)
}

func (m FilterPanelModel) renderInput(f filterField, label, input string) string {
	line := fmt.Sprintf("%-11s %s", label+":", input)
	if m.field == f {
		return m.theme.Highlighted.Render(line)
	}
	return m.theme.Normal.Render(line)
}

func (m FilterPanelModel) stateLabel() string {
	if m.stateIdx < 0 || m.stateIdx >= len(m.states) {
		return "select a state"
	}
	return m.states[m.stateIdx].StateName
}

func (m FilterPanelModel) districtLabel() string {
	if m.districtIdx == 0 || m.districtIdx > len(m.districts) {
		return "All districts"
	}
	return m.districts[m.districtIdx-1].DistrictName
}

func (m FilterPanelModel) typeLabel() string {
	if m.typeIdx == 0 || m.typeIdx > len(m.bloodTypes) {
		return "All types"
	}
	return m.bloodTypes[m.typeIdx-1]
}

// Resize updates the component size.
func (m *FilterPanelModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = max(10, width-16)
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
