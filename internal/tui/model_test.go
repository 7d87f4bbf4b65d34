package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haemic/bloodflow/internal/directory"
	"github.com/haemic/bloodflow/internal/model"
	"github.com/haemic/bloodflow/internal/store"
	"github.com/haemic/bloodflow/internal/tui/components"
)

// fakeDirectory serves canned responses for every endpoint.
type fakeDirectory struct {
	stocks []model.BloodStock
}

func (f *fakeDirectory) ListStates(_ context.Context) (*directory.StatesResponse, error) {
	return &directory.StatesResponse{}, nil
}

func (f *fakeDirectory) ListDistricts(_ context.Context, _ string) (*directory.DistrictsResponse, error) {
	return &directory.DistrictsResponse{}, nil
}

func (f *fakeDirectory) ListStock(_ context.Context, _, _, _ string) (*directory.StockResponse, error) {
	return &directory.StockResponse{Stocks: f.stocks, TotalResults: len(f.stocks)}, nil
}

// deliver runs a command and feeds every resulting message back through
// Update, the way the program loop would.
func deliver(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			deliver(t, m, c)
		}
		return
	}
	if msg == nil {
		return
	}
	updated, next := m.Update(msg)
	*m = updated.(Model)
	deliver(t, m, next)
}

func testModel(t *testing.T, client *fakeDirectory) (Model, *store.FilterStore, *store.StockStore) {
	t.Helper()
	filters := store.NewFilterStore()
	locations := store.NewLocationStore(client)
	stocks := store.NewStockStore(client)
	return newModel(context.Background(), Config{}, filters, locations, stocks), filters, stocks
}

func TestModel_RefetchKeepsLocalFilters(t *testing.T) {
	client := &fakeDirectory{stocks: []model.BloodStock{
		{BloodBankName: "Apollo Blood Bank", Address: "Mumbai", BloodGroups: map[string]int{"A+Ve": 5}},
		{BloodBankName: "Red Cross Centre", Address: "Pune", BloodGroups: map[string]int{"B+Ve": 8}},
	}}
	m, filters, stocks := testModel(t, client)

	filters.SetStateID("11")
	stocks.FetchStocks(context.Background(), "11", "", "", false)
	filters.SetSearchText("apollo")
	stocks.ApplyLocalFilters("apollo", 0)
	require.Len(t, stocks.Filtered(), 1)

	// Changing the district refetches the raw list; the search filter
	// must still apply once the new snapshot lands.
	updated, cmd := m.Update(components.DistrictChangedMsg{DistrictID: "77"})
	m = updated.(Model)
	deliver(t, &m, cmd)

	filtered := stocks.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "Apollo Blood Bank", filtered[0].BloodBankName)
}

func TestModel_RefetchKeepsMinQuantity(t *testing.T) {
	client := &fakeDirectory{stocks: []model.BloodStock{
		{BloodBankName: "Apollo Blood Bank", Address: "Mumbai", BloodGroups: map[string]int{"A+Ve": 5}},
		{BloodBankName: "Red Cross Centre", Address: "Pune", BloodGroups: map[string]int{"B+Ve": 2}},
	}}
	m, filters, stocks := testModel(t, client)

	filters.SetStateID("11")
	stocks.FetchStocks(context.Background(), "11", "", "", false)
	filters.SetMinQuantity(4)
	stocks.ApplyLocalFilters("", 4)
	require.Len(t, stocks.Filtered(), 1)

	updated, cmd := m.Update(components.BloodTypeChangedMsg{BloodType: model.BloodTypeAll})
	m = updated.(Model)
	deliver(t, &m, cmd)

	filtered := stocks.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "Apollo Blood Bank", filtered[0].BloodBankName)
}
