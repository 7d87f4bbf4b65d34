package store

import (
	"context"
	"sync"

	"github.com/haemic/bloodflow/internal/directory"
	"github.com/haemic/bloodflow/internal/model"
)

// LocationLister is the slice of the directory client the location
// cache depends on.
type LocationLister interface {
	ListStates(ctx context.Context) (*directory.StatesResponse, error)
	ListDistricts(ctx context.Context, stateID string) (*directory.DistrictsResponse, error)
}

// LocationStore caches fetched states and districts. States load once
// per process unless forced; districts are keyed by the owning state
// and fully replaced whenever it changes, so stale cross-state entries
// are never visible, even during the loading gap.
type LocationStore struct {
	client      LocationLister
	errText     string
	lastStateID string
	states      []model.State
	districts   []model.District
	statesFS    fetchState
	districtsFS fetchState
	mu          sync.Mutex
	changes     notifier
}

// NewLocationStore creates a location store backed by the given client.
func NewLocationStore(client LocationLister) *LocationStore {
	return &LocationStore{client: client}
}

// Subscribe registers a callback invoked after every visible change.
func (s *LocationStore) Subscribe(fn func()) func() {
	return s.changes.subscribe(fn)
}

// States returns a snapshot of the cached states.
func (s *LocationStore) States() []model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.State, len(s.states))
	copy(out, s.states)
	return out
}

// Districts returns a snapshot of the cached districts for the last
// fetched state.
func (s *LocationStore) Districts() []model.District {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.District, len(s.districts))
	copy(out, s.districts)
	return out
}

// StatesLoading reports whether a states fetch is in flight.
func (s *LocationStore) StatesLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statesFS.loading()
}

// DistrictsLoading reports whether a districts fetch is in flight.
func (s *LocationStore) DistrictsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.districtsFS.loading()
}

// StatesFailed reports whether the last states attempt failed.
func (s *LocationStore) StatesFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statesFS.failed()
}

// DistrictsFailed reports whether the last districts attempt failed.
func (s *LocationStore) DistrictsFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.districtsFS.failed()
}

// Err returns the last error message, empty when the last attempt
// succeeded.
func (s *LocationStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errText
}

// FetchStates loads the state list. It is a no-op when states are
// already loaded, or when a prior attempt failed, unless forced.
func (s *LocationStore) FetchStates(ctx context.Context, force bool) {
	s.mu.Lock()
	if s.statesFS.ready() && !force {
		s.mu.Unlock()
		return
	}
	seq, ok := s.statesFS.begin("states", force)
	if !ok {
		s.mu.Unlock()
		return
	}
	s.errText = ""
	s.mu.Unlock()
	s.changes.notify()

	resp, err := s.client.ListStates(ctx)

	s.mu.Lock()
	if err != nil {
		if !s.statesFS.fail(seq) {
			s.mu.Unlock()
			return
		}
		s.errText = err.Error()
		s.mu.Unlock()
		s.changes.notify()
		return
	}
	if !s.statesFS.succeed(seq) {
		s.mu.Unlock()
		return
	}
	s.states = resp.States
	s.errText = ""
	s.mu.Unlock()
	s.changes.notify()
}

// FetchDistricts loads the district list for stateID. A change of state
// clears the current districts and failure flag before the request goes
// out. An empty stateID clears the cache synchronously with no request.
func (s *LocationStore) FetchDistricts(ctx context.Context, stateID string, force bool) {
	if stateID == "" {
		s.ClearDistricts()
		return
	}

	s.mu.Lock()
	if s.lastStateID != stateID {
		s.districts = nil
		s.districtsFS.reset()
		s.errText = ""
	}
	seq, ok := s.districtsFS.begin(stateID, force)
	if !ok {
		s.mu.Unlock()
		return
	}
	s.lastStateID = stateID
	s.errText = ""
	s.mu.Unlock()
	s.changes.notify()

	resp, err := s.client.ListDistricts(ctx, stateID)

	s.mu.Lock()
	if err != nil {
		if !s.districtsFS.fail(seq) {
			s.mu.Unlock()
			return
		}
		s.districts = nil
		s.errText = err.Error()
		s.mu.Unlock()
		s.changes.notify()
		return
	}
	if !s.districtsFS.succeed(seq) {
		s.mu.Unlock()
		return
	}
	s.districts = resp.Districts
	s.errText = ""
	s.mu.Unlock()
	s.changes.notify()
}

// ClearDistricts drops the cached districts and failure state.
func (s *LocationStore) ClearDistricts() {
	s.mu.Lock()
	s.districts = nil
	s.districtsFS.reset()
	s.lastStateID = ""
	s.errText = ""
	s.mu.Unlock()
	s.changes.notify()
}
