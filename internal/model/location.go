package model

// State represents a state served by the blood bank directory.
// Immutable once fetched; identified by StateID.
type State struct {
	StateID   string `json:"stateId"`
	StateName string `json:"stateName"`
	StateCode string `json:"stateCode"`
}

// District represents a district scoped to exactly one state.
type District struct {
	DistrictID   string `json:"districtId"`
	DistrictName string `json:"districtName"`
	DistrictCode string `json:"districtCode"`
	StateID      string `json:"stateId"`
}

// DistrictAny is the reserved district ID meaning "no district filter applied".
const DistrictAny = "-1"

// BloodTypeAll is the blood type query value meaning "all blood types".
const BloodTypeAll = "all"
