package model

import "strings"

// LowStockThreshold is the unit count below which a blood component is
// considered low stock.
const LowStockThreshold = 3

// BloodStock represents one blood bank's reported inventory snapshot.
// BloodGroups maps raw blood-type labels (e.g. "A+Ve") to unit counts
// and may be nil when the bank reported no component data.
type BloodStock struct {
	BloodGroups   map[string]int `json:"bloodGroups"`
	BloodBankName string         `json:"bloodBankName"`
	Address       string         `json:"address"`
	Contact       string         `json:"contact"`
	Distance      *float64       `json:"distance"`
	Latitude      *float64       `json:"latitude"`
	Longitude     *float64       `json:"longitude"`
}

// TotalUnits returns the sum of all component unit counts, or 0 when the
// bank reported no component data.
func (s *BloodStock) TotalUnits() int {
	total := 0
	for _, qty := range s.BloodGroups {
		total += qty
	}
	return total
}

// HasComponentData reports whether the bank reported any per-type counts.
func (s *BloodStock) HasComponentData() bool {
	return len(s.BloodGroups) > 0
}

// IsLowStock reports whether a single component count is below the
// low-stock threshold.
func IsLowStock(count int) bool {
	return count < LowStockThreshold
}

// NormalizeBloodGroup converts a raw blood-type label to its display form.
// The directory reports labels like "A+Ve"; display form strips the
// trailing "Ve" and surrounding whitespace. The stored key is never mutated.
func NormalizeBloodGroup(label string) string {
	return strings.TrimSpace(strings.Replace(label, "Ve", "", 1))
}
