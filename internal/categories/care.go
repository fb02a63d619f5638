package categories

import (
	"github.com/shopspring/decimal"

	"premium-estimator/internal/model"
)

// CareCategory is the long-term-care levy. Only members aged 40 or over are
// counted, there is no preschool discount, and with nobody in the age band
// the income portion is zero too.
type CareCategory struct{}

func (c *CareCategory) Name() string { return model.CategoryCare }

func (c *CareCategory) Assess(comp model.Composition, r model.Rate) model.Levy {
	income := decimal.Zero
	if comp.CareMembers > 0 {
		income = comp.TaxableIncome.Mul(r.IncomeRate)
	}
	perCapita := r.PerCapita.Mul(decimal.NewFromInt(int64(comp.CareMembers)))

	return capped(model.CategoryCare, income, perCapita, r.Ceiling)
}
