package model

// FilterCriteria holds the user-selected search criteria for the
// inventory view.
type FilterCriteria struct {
	SearchText  string
	BloodType   string // empty = any
	StateID     string // empty = unselected
	DistrictID  string // DistrictAny = any district
	MinQuantity int
}

// DefaultFilterCriteria returns the criteria in effect at session start.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{DistrictID: DistrictAny}
}

// HasActiveFilters reports whether any field is non-default. A state
// selection alone counts as active since it drives a server fetch.
func (c FilterCriteria) HasActiveFilters() bool {
	return c.SearchText != "" ||
		c.BloodType != "" ||
		c.StateID != "" ||
		c.DistrictID != DistrictAny ||
		c.MinQuantity > 0
}

// QueryDistrictID returns the district ID to send to the directory,
// substituting the sentinel when unset.
func (c FilterCriteria) QueryDistrictID() string {
	if c.DistrictID == "" {
		return DistrictAny
	}
	return c.DistrictID
}

// QueryBloodType returns the blood type to send to the directory,
// substituting "all" when no type is selected.
func (c FilterCriteria) QueryBloodType() string {
	if c.BloodType == "" {
		return BloodTypeAll
	}
	return c.BloodType
}
