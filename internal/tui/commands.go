package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Fetch commands run the blocking store operations off the update loop.
// Stale completions are discarded inside the stores, so overlapping
// commands are safe.

func (m Model) fetchStates(force bool) tea.Cmd {
	return func() tea.Msg {
		m.locations.FetchStates(m.ctx, force)
		return statesLoadedMsg{}
	}
}

func (m Model) fetchDistricts(stateID string, force bool) tea.Cmd {
	return func() tea.Msg {
		m.locations.FetchDistricts(m.ctx, stateID, force)
		return districtsLoadedMsg{}
	}
}

func (m Model) fetchStocks(force bool) tea.Cmd {
	criteria := m.filters.Criteria()
	return func() tea.Msg {
		m.stocks.FetchStocks(m.ctx, criteria.StateID, criteria.DistrictID, criteria.BloodType, force)
		return stocksLoadedMsg{}
	}
}

func (m Model) sendChat(text string) tea.Cmd {
	session := m.session
	ctx := m.ctx
	return func() tea.Msg {
		session.Send(ctx, text)
		return chatSentMsg{}
	}
}
