package store

import (
	"testing"

	"github.com/haemic/bloodflow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFilterStore_SetStateResetsDistrict(t *testing.T) {
	s := NewFilterStore()
	s.SetDistrictID("94")

	s.SetStateID("7")

	c := s.Criteria()
	assert.Equal(t, "7", c.StateID)
	assert.Equal(t, model.DistrictAny, c.DistrictID, "selecting a state must reset the district")

	// Clearing the state leaves the district alone.
	s.SetDistrictID("95")
	s.SetStateID("")
	assert.Equal(t, "95", s.Criteria().DistrictID)
}

func TestFilterStore_ClearFilters(t *testing.T) {
	tests := []struct {
		name      string
		keepState bool
		wantState string
	}{
		{"keep state", true, "7"},
		{"drop state", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFilterStore()
			s.SetStateID("7")
			s.SetDistrictID("94")
			s.SetBloodType("A+")
			s.SetSearchText("apollo")
			s.SetMinQuantity(5)

			s.ClearFilters(tt.keepState)

			c := s.Criteria()
			assert.Equal(t, tt.wantState, c.StateID)
			assert.Equal(t, model.DistrictAny, c.DistrictID)
			assert.Empty(t, c.BloodType)
			assert.Empty(t, c.SearchText)
			assert.Zero(t, c.MinQuantity)
		})
	}
}

func TestFilterStore_SetMinQuantityClampsNegative(t *testing.T) {
	s := NewFilterStore()
	s.SetMinQuantity(-3)
	assert.Zero(t, s.Criteria().MinQuantity)
}

func TestFilterStore_SubscribeSeesSnapshot(t *testing.T) {
	s := NewFilterStore()

	var got []model.FilterCriteria
	cancel := s.Subscribe(func(c model.FilterCriteria) {
		got = append(got, c)
	})
	defer cancel()

	s.SetStateID("7")
	s.SetBloodType("O-")

	assert.Len(t, got, 2)
	assert.Equal(t, "7", got[0].StateID)
	assert.Equal(t, "O-", got[1].BloodType)

	cancel()
	s.SetSearchText("red cross")
	assert.Len(t, got, 2, "cancelled subscriber must not fire")
}
