// Package estimator holds the pure premium arithmetic: the insurance
// estimate, the pension cost and the assembled calculation result. Nothing
// here reads configuration or performs I/O.
package estimator

import (
	"github.com/shopspring/decimal"

	"premium-estimator/internal/categories"
	"premium-estimator/internal/model"
)

const monthsPerYear = 12

// Compose derives the taxable income and head counts of a household.
// Negative ages or counts are treated as zero.
func Compose(in model.HouseholdInput, s model.RateSchedule) model.Composition {
	taxable := decimal.NewFromInt(in.AnnualIncome).Sub(s.StandardDeduction)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	spouse := 0
	if in.SpouseStatus.Present() {
		spouse = 1
	}
	preschool := max(in.PreschoolDependents, 0)
	other := max(in.OtherDependents, 0)

	care := 0
	if in.PrimaryAge >= 40 {
		care++
	}
	if in.SpouseStatus.CareAge() {
		care++
	}

	return model.Composition{
		TaxableIncome:     taxable,
		TotalMembers:      1 + spouse + preschool + other,
		NormalRateMembers: 1 + spouse + other,
		PreschoolMembers:  preschool,
		CareMembers:       care,
	}
}

// Estimate computes the annual insurance premium of a household. Each
// category is capped independently and the sum is rounded to whole yen.
func Estimate(in model.HouseholdInput, s model.RateSchedule) model.PremiumBreakdown {
	comp := Compose(in, s)

	b := model.PremiumBreakdown{
		Composition:  comp,
		MedicalTotal: decimal.Zero,
		SupportTotal: decimal.Zero,
		CareTotal:    decimal.Zero,
	}

	sum := decimal.Zero
	for _, c := range categories.All() {
		rate, _ := s.Rate(c.Name())
		levy := c.Assess(comp, rate)
		b.Levies = append(b.Levies, levy)
		sum = sum.Add(levy.Total)

		switch c.Name() {
		case model.CategoryMedical:
			b.MedicalTotal = levy.Total
		case model.CategorySupport:
			b.SupportTotal = levy.Total
		case model.CategoryCare:
			b.CareTotal = levy.Total
		}
	}

	b.EstimatedAnnualInsurance = model.Yen(sum)
	return b
}

// PensionAnnual is the flat pension contribution for the primary applicant
// and, when present, the spouse.
func PensionAnnual(hasSpouse bool, monthly decimal.Decimal) int64 {
	members := int64(1)
	if hasSpouse {
		members = 2
	}
	return model.Yen(monthly.Mul(decimal.NewFromInt(members * monthsPerYear)))
}

// Assemble combines an estimate and a pension cost into a calculation
// result. Savings against the alternative plan are not clamped.
func Assemble(inquiryID string, in model.HouseholdInput, b model.PremiumBreakdown, pension int64, altPlan decimal.Decimal) model.CalculationResult {
	current := b.EstimatedAnnualInsurance + pension
	return model.CalculationResult{
		InquiryID:                inquiryID,
		HouseholdInput:           in,
		EstimatedAnnualInsurance: b.EstimatedAnnualInsurance,
		AnnualPensionCost:        pension,
		CurrentTotalAnnualCost:   current,
		ProjectedAnnualSavings:   current - model.Yen(altPlan),
		Breakdown:                b,
	}
}
