package categories

import "premium-estimator/internal/model"

// Category defines the contract for one levy line of the annual premium.
// Each category assesses a household composition against its own rate and
// applies its own ceiling; ceilings never apply to the grand total.
type Category interface {
	Name() string
	Assess(c model.Composition, r model.Rate) model.Levy
}
