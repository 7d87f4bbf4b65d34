package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/haemic/bloodflow/internal/directory"
	"github.com/haemic/bloodflow/internal/model"
	"github.com/haemic/bloodflow/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStockLister struct {
	err    error
	stocks []model.BloodStock
	mu     sync.Mutex
	calls  int
}

func (f *fakeStockLister) ListStock(_ context.Context, _, _, _ string) (*directory.StockResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &directory.StockResponse{
		Stocks:       f.stocks,
		TotalResults: len(f.stocks),
		Location:     "Delhi",
	}, nil
}

func sampleStocks() []model.BloodStock {
	return []model.BloodStock{
		{
			BloodBankName: "Apollo Blood Center",
			Address:       "Apollo Hospital, Sector 5",
			BloodGroups:   map[string]int{"A+Ve": 32, "B+Ve": 18},
		},
		{
			BloodBankName: "Red Cross Blood Bank",
			Address:       "Main Street",
			BloodGroups:   map[string]int{"O+Ve": 45, "O-Ve": 12},
		},
		{
			BloodBankName: "Fortis Blood Bank",
			Address:       "Vasant Kunj",
		},
	}
}

func TestStockStore_FetchReplacesListsAndResetsWindow(t *testing.T) {
	fake := &fakeStockLister{stocks: sampleStocks()}
	s := NewStockStore(fake)
	ctx := context.Background()

	s.SetVisibleRange(window.Range{Start: 4, End: 9})
	s.FetchStocks(ctx, "7", model.DistrictAny, model.BloodTypeAll, false)

	assert.Len(t, s.Stocks(), 3)
	assert.Len(t, s.Filtered(), 3, "filtered list starts as the full response")
	assert.Equal(t, window.Reset(), s.VisibleRange())
	assert.False(t, s.Failed())
	assert.Empty(t, s.Err())
}

func TestStockStore_EmptyStateClears(t *testing.T) {
	fake := &fakeStockLister{stocks: sampleStocks()}
	s := NewStockStore(fake)
	ctx := context.Background()

	s.FetchStocks(ctx, "7", "", "", false)
	require.NotEmpty(t, s.Stocks())

	s.FetchStocks(ctx, "", "", "", false)

	assert.Empty(t, s.Stocks())
	assert.Empty(t, s.Filtered())
	assert.False(t, s.Failed())
	assert.Equal(t, 1, fake.calls, "clearing must not issue a request")
}

func TestStockStore_FailureSkipAndForce(t *testing.T) {
	fake := &fakeStockLister{err: errors.New("bad gateway")}
	s := NewStockStore(fake)
	ctx := context.Background()

	// First attempt fails and clears both lists.
	s.FetchStocks(ctx, "7", "-1", "all", false)
	assert.Equal(t, 1, fake.calls)
	assert.True(t, s.Failed())
	assert.Empty(t, s.Stocks())
	assert.NotEmpty(t, s.Err())

	// Identical params, not forced: exactly one request total.
	s.FetchStocks(ctx, "7", "-1", "all", false)
	assert.Equal(t, 1, fake.calls)

	// Forced: issues a second request regardless of failure history.
	s.FetchStocks(ctx, "7", "-1", "all", true)
	assert.Equal(t, 2, fake.calls)

	// Param change also re-enables fetching.
	s.FetchStocks(ctx, "7", "94", "all", false)
	assert.Equal(t, 3, fake.calls)
}

func TestStockStore_ApplyLocalFilters(t *testing.T) {
	tests := []struct {
		name        string
		searchText  string
		minQuantity int
		wantBanks   []string
	}{
		{
			name:      "no filters keeps everything",
			wantBanks: []string{"Apollo Blood Center", "Red Cross Blood Bank", "Fortis Blood Bank"},
		},
		{
			name:       "search matches name or address",
			searchText: "apollo",
			wantBanks:  []string{"Apollo Blood Center"},
		},
		{
			name:       "search matches address only",
			searchText: "main street",
			wantBanks:  []string{"Red Cross Blood Bank"},
		},
		{
			name:        "min quantity excludes low and missing data",
			minQuantity: 51,
			wantBanks:   []string{"Red Cross Blood Bank"},
		},
		{
			name:        "min quantity zero keeps banks without data",
			minQuantity: 0,
			wantBanks:   []string{"Apollo Blood Center", "Red Cross Blood Bank", "Fortis Blood Bank"},
		},
		{
			name:        "filters combine",
			searchText:  "blood bank",
			minQuantity: 1,
			wantBanks:   []string{"Red Cross Blood Bank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeStockLister{stocks: sampleStocks()}
			s := NewStockStore(fake)
			s.FetchStocks(context.Background(), "7", "", "", false)

			s.SetVisibleRange(window.Range{Start: 2, End: 7})
			s.ApplyLocalFilters(tt.searchText, tt.minQuantity)

			var got []string
			for _, stock := range s.Filtered() {
				got = append(got, stock.BloodBankName)
			}
			assert.Equal(t, tt.wantBanks, got)
			assert.Equal(t, window.Reset(), s.VisibleRange(), "filtering must reset the window")
		})
	}
}

func TestStockStore_BloodTypesCatalogFromRawList(t *testing.T) {
	fake := &fakeStockLister{stocks: sampleStocks()}
	s := NewStockStore(fake)
	s.FetchStocks(context.Background(), "7", "", "", false)

	// Narrow the filtered list; the catalog must not shrink.
	s.ApplyLocalFilters("apollo", 0)

	assert.Equal(t, []string{"A+", "B+", "O+", "O-"}, s.BloodTypes())
}

func TestStockStore_Stats(t *testing.T) {
	fake := &fakeStockLister{stocks: []model.BloodStock{
		{BloodGroups: map[string]int{"O+Ve": 5, "A+Ve": 2}},
		{BloodGroups: map[string]int{"B+Ve": 1}},
	}}
	s := NewStockStore(fake)
	s.FetchStocks(context.Background(), "7", "", "", false)

	stats := s.Stats()
	assert.Equal(t, 8, stats.TotalUnits)
	assert.Equal(t, 2, stats.AvailableBanks)
	assert.Equal(t, 3, stats.UniqueBloodTypes)
}
