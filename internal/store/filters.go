package store

import (
	"sync"

	"github.com/haemic/bloodflow/internal/model"
)

// FilterStore owns the user-selected search criteria. Every mutation
// goes through one of the enumerated setters; selecting a new state
// resets the district to the sentinel in the same critical section so
// no reader can observe the old district against the new state.
type FilterStore struct {
	criteria model.FilterCriteria
	mu       sync.Mutex
	changes  notifier
}

// NewFilterStore creates a filter store with empty defaults.
func NewFilterStore() *FilterStore {
	return &FilterStore{criteria: model.DefaultFilterCriteria()}
}

// Subscribe registers a callback invoked after every criteria change.
func (s *FilterStore) Subscribe(fn func(model.FilterCriteria)) func() {
	return s.changes.subscribe(func() {
		fn(s.Criteria())
	})
}

// Criteria returns a snapshot of the current criteria.
func (s *FilterStore) Criteria() model.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// HasActiveFilters reports whether any criteria field is non-default.
func (s *FilterStore) HasActiveFilters() bool {
	return s.Criteria().HasActiveFilters()
}

// SetSearchText updates the free-text search filter.
func (s *FilterStore) SetSearchText(text string) {
	s.mu.Lock()
	s.criteria.SearchText = text
	s.mu.Unlock()
	s.changes.notify()
}

// SetBloodType updates the selected blood type. Empty means any.
func (s *FilterStore) SetBloodType(bloodType string) {
	s.mu.Lock()
	s.criteria.BloodType = bloodType
	s.mu.Unlock()
	s.changes.notify()
}

// SetDistrictID updates the selected district.
func (s *FilterStore) SetDistrictID(districtID string) {
	s.mu.Lock()
	s.criteria.DistrictID = districtID
	s.mu.Unlock()
	s.changes.notify()
}

// SetStateID updates the selected state. Selecting a non-empty state
// resets the district to "any" atomically with the state change.
func (s *FilterStore) SetStateID(stateID string) {
	s.mu.Lock()
	s.criteria.StateID = stateID
	if stateID != "" {
		s.criteria.DistrictID = model.DistrictAny
	}
	s.mu.Unlock()
	s.changes.notify()
}

// SetMinQuantity updates the minimum total unit count filter. Negative
// values clamp to zero.
func (s *FilterStore) SetMinQuantity(quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	s.mu.Lock()
	s.criteria.MinQuantity = quantity
	s.mu.Unlock()
	s.changes.notify()
}

// ClearFilters resets every filter to its default. The state selection
// survives when keepState is true.
func (s *FilterStore) ClearFilters(keepState bool) {
	s.mu.Lock()
	stateID := s.criteria.StateID
	s.criteria = model.DefaultFilterCriteria()
	if keepState {
		s.criteria.StateID = stateID
	}
	s.mu.Unlock()
	s.changes.notify()
}
