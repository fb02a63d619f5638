package model

import "github.com/shopspring/decimal"

// Levy category names, in assessment order.
const (
	CategoryMedical = "medical"
	CategorySupport = "support"
	CategoryCare    = "care"
)

// Rate is the coefficient triple of one levy category.
type Rate struct {
	IncomeRate decimal.Decimal `yaml:"income_rate" json:"income_rate"`
	PerCapita  decimal.Decimal `yaml:"per_capita" json:"per_capita"`
	Ceiling    decimal.Decimal `yaml:"ceiling" json:"ceiling"`
}

// RateSchedule is the read-only set of coefficients every estimate uses.
type RateSchedule struct {
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	Medical           Rate            `yaml:"medical" json:"medical"`
	Support           Rate            `yaml:"support" json:"support"`
	Care              Rate            `yaml:"care" json:"care"`
}

// DefaultRateSchedule returns nationwide-average coefficients.
func DefaultRateSchedule() RateSchedule {
	return RateSchedule{
		StandardDeduction: decimal.NewFromInt(430000),
		Medical: Rate{
			IncomeRate: decimal.RequireFromString("0.080"),
			PerCapita:  decimal.NewFromInt(45000),
			Ceiling:    decimal.NewFromInt(650000),
		},
		Support: Rate{
			IncomeRate: decimal.RequireFromString("0.025"),
			PerCapita:  decimal.NewFromInt(15000),
			Ceiling:    decimal.NewFromInt(220000),
		},
		Care: Rate{
			IncomeRate: decimal.RequireFromString("0.022"),
			PerCapita:  decimal.NewFromInt(18000),
			Ceiling:    decimal.NewFromInt(170000),
		},
	}
}

// Rate returns the coefficients for a category name.
func (s RateSchedule) Rate(category string) (Rate, bool) {
	switch category {
	case CategoryMedical:
		return s.Medical, true
	case CategorySupport:
		return s.Support, true
	case CategoryCare:
		return s.Care, true
	}
	return Rate{}, false
}
