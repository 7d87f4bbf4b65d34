package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/haemic/bloodflow/internal/directory"
	"github.com/haemic/bloodflow/internal/model"
	"github.com/haemic/bloodflow/internal/window"
)

// StockLister is the slice of the directory client the stock cache
// depends on.
type StockLister interface {
	ListStock(ctx context.Context, stateID, districtID, bloodType string) (*directory.StockResponse, error)
}

// Stats summarizes the filtered stock list.
type Stats struct {
	TotalUnits       int
	AvailableBanks   int
	UniqueBloodTypes int
}

// StockStore caches the remote stock list for the current selection and
// derives a locally filtered subset from it. Fetching is the only
// network-bound operation; the filter pass, blood-type catalog, and
// stats are pure recomputations over the cached snapshot.
type StockStore struct {
	client   StockLister
	errText  string
	stocks   []model.BloodStock
	filtered []model.BloodStock
	visible  window.Range
	fs       fetchState
	mu       sync.Mutex
	changes  notifier
}

// NewStockStore creates a stock store backed by the given client.
func NewStockStore(client StockLister) *StockStore {
	return &StockStore{
		client:  client,
		visible: window.Reset(),
	}
}

// Subscribe registers a callback invoked after every visible change.
func (s *StockStore) Subscribe(fn func()) func() {
	return s.changes.subscribe(fn)
}

// Stocks returns a snapshot of the raw stock list.
func (s *StockStore) Stocks() []model.BloodStock {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.BloodStock, len(s.stocks))
	copy(out, s.stocks)
	return out
}

// Filtered returns a snapshot of the locally filtered stock list.
func (s *StockStore) Filtered() []model.BloodStock {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.BloodStock, len(s.filtered))
	copy(out, s.filtered)
	return out
}

// Loading reports whether a stock fetch is in flight.
func (s *StockStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs.loading()
}

// Failed reports whether the last fetch attempt failed.
func (s *StockStore) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs.failed()
}

// Err returns the last error message for display, empty when the last
// attempt succeeded.
func (s *StockStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errText
}

// VisibleRange returns the current index window over the filtered list.
func (s *StockStore) VisibleRange() window.Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// SetVisibleRange replaces the index window, e.g. on scroll.
func (s *StockStore) SetVisibleRange(r window.Range) {
	s.mu.Lock()
	s.visible = r
	s.mu.Unlock()
	s.changes.notify()
}

// ResetVisibleRange returns the window to the top of the list.
func (s *StockStore) ResetVisibleRange() {
	s.SetVisibleRange(window.Reset())
}

// FetchStocks loads the stock list for the selection. An empty stateID
// clears the cache with no request. The request is skipped iff a prior
// attempt failed, force is false, and the selection is unchanged; a
// completion superseded by a later fetch is discarded.
func (s *StockStore) FetchStocks(ctx context.Context, stateID, districtID, bloodType string, force bool) {
	if stateID == "" {
		s.mu.Lock()
		s.stocks = nil
		s.filtered = nil
		s.visible = window.Reset()
		s.fs.reset()
		s.errText = ""
		s.mu.Unlock()
		s.changes.notify()
		return
	}

	if districtID == "" {
		districtID = model.DistrictAny
	}
	if bloodType == "" {
		bloodType = model.BloodTypeAll
	}
	params := stateID + "\x00" + districtID + "\x00" + bloodType

	s.mu.Lock()
	seq, ok := s.fs.begin(params, force)
	if !ok {
		s.mu.Unlock()
		return
	}
	s.errText = ""
	s.mu.Unlock()
	s.changes.notify()

	resp, err := s.client.ListStock(ctx, stateID, districtID, bloodType)

	s.mu.Lock()
	if err != nil {
		if !s.fs.fail(seq) {
			s.mu.Unlock()
			return
		}
		s.stocks = nil
		s.filtered = nil
		s.errText = err.Error()
		s.mu.Unlock()
		s.changes.notify()
		return
	}
	if !s.fs.succeed(seq) {
		s.mu.Unlock()
		return
	}
	s.stocks = resp.Stocks
	s.filtered = resp.Stocks
	s.visible = window.Reset()
	s.errText = ""
	s.mu.Unlock()
	s.changes.notify()
}

// ApplyLocalFilters recomputes the filtered subset from the raw list:
// a case-insensitive substring match of searchText against bank name or
// address, and a minimum total unit count. Stocks with no component
// data are excluded once minQuantity > 0. The visible range always
// resets so it can never reference indices past the fresh list.
func (s *StockStore) ApplyLocalFilters(searchText string, minQuantity int) {
	needle := strings.ToLower(searchText)

	s.mu.Lock()
	filtered := make([]model.BloodStock, 0, len(s.stocks))
	for _, stock := range s.stocks {
		if needle != "" &&
			!strings.Contains(strings.ToLower(stock.BloodBankName), needle) &&
			!strings.Contains(strings.ToLower(stock.Address), needle) {
			continue
		}
		if minQuantity > 0 {
			if !stock.HasComponentData() || stock.TotalUnits() < minQuantity {
				continue
			}
		}
		filtered = append(filtered, stock)
	}
	s.filtered = filtered
	s.visible = window.Reset()
	s.mu.Unlock()
	s.changes.notify()
}

// BloodTypes returns the sorted, de-duplicated set of normalized
// blood-type labels observed across the raw stock list. The catalog is
// independent of the current local filtering so the type selector does
// not shrink as the user narrows the list.
func (s *StockStore) BloodTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	for _, stock := range s.stocks {
		for label := range stock.BloodGroups {
			seen[model.NormalizeBloodGroup(label)] = struct{}{}
		}
	}

	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Stats computes totals over the filtered list. Distinct blood types
// are counted on the raw labels, matching what the banks report.
func (s *StockStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{AvailableBanks: len(s.filtered)}
	unique := make(map[string]struct{})
	for _, stock := range s.filtered {
		for label, qty := range stock.BloodGroups {
			stats.TotalUnits += qty
			unique[label] = struct{}{}
		}
	}
	stats.UniqueBloodTypes = len(unique)
	return stats
}
