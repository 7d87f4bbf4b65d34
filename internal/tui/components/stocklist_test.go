package components

import (
	"fmt"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haemic/bloodflow/internal/model"
	"github.com/haemic/bloodflow/internal/tui/themes"
)

func makeStocks(n int) []model.BloodStock {
	stocks := make([]model.BloodStock, n)
	for i := range stocks {
		stocks[i] = model.BloodStock{
			BloodBankName: fmt.Sprintf("Bank %02d", i),
			Address:       "Somewhere",
			BloodGroups:   map[string]int{"A+Ve": i + 1},
		}
	}
	return stocks
}

func TestStockList_VisibleRangeClampsToList(t *testing.T) {
	list := NewStockList(themes.Default)
	list.Resize(80, 24)
	list.SetStocks(makeStocks(3))

	r := list.VisibleRange()
	assert.Equal(t, 0, r.Start)
	assert.Equal(t, 3, r.End)
}

func TestStockList_ScrollKeepsCursorVisible(t *testing.T) {
	list := NewStockList(themes.Default)
	list.Resize(80, 24)
	list.SetStocks(makeStocks(50))

	for i := 0; i < 20; i++ {
		list, _ = list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}

	r := list.VisibleRange()
	assert.LessOrEqual(t, r.Start, 20)
	assert.Greater(t, r.End, 20, "cursor row must stay inside the window")
	assert.Less(t, r.Len(), 50, "window must not cover the whole list")
}

func TestStockList_JumpToEnd(t *testing.T) {
	list := NewStockList(themes.Default)
	list.Resize(80, 24)
	list.SetStocks(makeStocks(40))

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})

	r := list.VisibleRange()
	assert.Equal(t, 40, r.End)
	assert.Greater(t, r.Start, 0)
}

func TestStockList_SelectEmitsStock(t *testing.T) {
	list := NewStockList(themes.Default)
	list.Resize(80, 24)
	list.SetStocks(makeStocks(5))

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	_, cmd := list.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(StockSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "Bank 01", msg.Stock.BloodBankName)
	assert.Equal(t, 1, msg.Index)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short stays", "Apollo", 10, "Apollo"},
		{"ascii trims", "Apollo Blood Bank", 10, "Apollo ..."},
		{"multibyte trims on runes", "रक्तकोष अस्पताल मुंबई", 10, "रक्तकोष..."},
		{"tiny width untouched", "Apollo", 3, "Apollo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestStockList_NewStocksResetWindow(t *testing.T) {
	list := NewStockList(themes.Default)
	list.Resize(80, 24)
	list.SetStocks(makeStocks(50))
	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})

	list.SetStocks(makeStocks(8))

	r := list.VisibleRange()
	assert.Equal(t, 0, r.Start)
	assert.Equal(t, 8, r.End)
}
