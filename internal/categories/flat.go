package categories

import (
	"github.com/shopspring/decimal"

	"premium-estimator/internal/model"
)

var half = decimal.RequireFromString("0.5")

// flatCategory is the medical and support levy: every member pays the
// per-capita amount except preschool dependents, who pay half of it.
type flatCategory struct {
	name string
}

func (c *flatCategory) Name() string { return c.name }

func (c *flatCategory) Assess(comp model.Composition, r model.Rate) model.Levy {
	income := comp.TaxableIncome.Mul(r.IncomeRate)

	perCapita := r.PerCapita.Mul(decimal.NewFromInt(int64(comp.NormalRateMembers))).
		Add(r.PerCapita.Mul(decimal.NewFromInt(int64(comp.PreschoolMembers))).Mul(half))

	return capped(c.name, income, perCapita, r.Ceiling)
}

func capped(name string, income, perCapita, ceiling decimal.Decimal) model.Levy {
	sum := income.Add(perCapita)
	total := decimal.Min(sum, ceiling)
	return model.Levy{
		Category:         name,
		IncomePortion:    income,
		PerCapitaPortion: perCapita,
		Total:            total,
		Capped:           sum.GreaterThan(ceiling),
	}
}
