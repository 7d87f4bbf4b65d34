package model

import "testing"

func TestBloodStock_TotalUnits(t *testing.T) {
	tests := []struct {
		name  string
		stock BloodStock
		want  int
	}{
		{
			name: "sums all components",
			stock: BloodStock{
				BloodGroups: map[string]int{"O+Ve": 5, "A+Ve": 2, "B-Ve": 1},
			},
			want: 8,
		},
		{
			name:  "nil blood groups",
			stock: BloodStock{},
			want:  0,
		},
		{
			name: "empty blood groups",
			stock: BloodStock{
				BloodGroups: map[string]int{},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stock.TotalUnits(); got != tt.want {
				t.Errorf("TotalUnits() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalizeBloodGroup(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"A+Ve", "A+"},
		{"O-Ve", "O-"},
		{"AB+Ve", "AB+"},
		{" B+Ve ", "B+"},
		{"O+", "O+"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := NormalizeBloodGroup(tt.label); got != tt.want {
				t.Errorf("NormalizeBloodGroup(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestIsLowStock(t *testing.T) {
	if !IsLowStock(0) || !IsLowStock(2) {
		t.Error("counts below the threshold should be low stock")
	}
	if IsLowStock(3) || IsLowStock(10) {
		t.Error("counts at or above the threshold should not be low stock")
	}
}

func TestFilterCriteria_HasActiveFilters(t *testing.T) {
	tests := []struct {
		name     string
		criteria FilterCriteria
		want     bool
	}{
		{"defaults", DefaultFilterCriteria(), false},
		{"search text", FilterCriteria{SearchText: "apollo", DistrictID: DistrictAny}, true},
		{"blood type", FilterCriteria{BloodType: "A+", DistrictID: DistrictAny}, true},
		{"state only", FilterCriteria{StateID: "7", DistrictID: DistrictAny}, true},
		{"district", FilterCriteria{DistrictID: "12"}, true},
		{"min quantity", FilterCriteria{MinQuantity: 5, DistrictID: DistrictAny}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.HasActiveFilters(); got != tt.want {
				t.Errorf("HasActiveFilters() = %v, want %v", got, tt.want)
			}
		})
	}
}
