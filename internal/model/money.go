package model

import (
	"github.com/shopspring/decimal"
)

// Money is a yen amount. Intermediate levy figures may carry fractions; only
// the published totals are rounded.
type Money = decimal.Decimal

// Yen rounds half away from zero to a whole yen amount. All published amounts
// are non-negative except savings, which are computed from already-rounded
// integers.
func Yen(m Money) int64 {
	return m.Round(0).IntPart()
}
