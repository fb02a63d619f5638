package model

// SpouseStatus is the tri-state spouse field of a household.
type SpouseStatus string

const (
	SpouseNone     SpouseStatus = "none"
	SpouseUnder40  SpouseStatus = "under40"
	Spouse40OrOver SpouseStatus = "40"
)

// Present reports whether the household has a spouse, whatever the age band.
func (s SpouseStatus) Present() bool {
	return s == SpouseUnder40 || s == Spouse40OrOver
}

// CareAge reports whether the spouse falls in the long-term-care age band.
func (s SpouseStatus) CareAge() bool {
	return s == Spouse40OrOver
}

// HouseholdInput is one validated calculation request. AnnualIncome is in
// whole yen.
type HouseholdInput struct {
	AnnualIncome        int64        `json:"income"`
	PrimaryAge          int          `json:"age"`
	SpouseStatus        SpouseStatus `json:"spouse_age"`
	PreschoolDependents int          `json:"preschool_dependents"`
	OtherDependents     int          `json:"other_dependents"`
}

// Composition holds the head counts and taxable income derived from a
// HouseholdInput. Every levy category is assessed against it.
type Composition struct {
	TaxableIncome     Money `json:"taxable_income"`
	TotalMembers      int   `json:"total_members"`
	NormalRateMembers int   `json:"normal_rate_members"`
	PreschoolMembers  int   `json:"preschool_members"`
	CareMembers       int   `json:"care_members"`
}
