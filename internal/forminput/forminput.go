// Package forminput coerces raw form fields into a HouseholdInput. Numbers
// are read leniently: a leading numeric prefix is used, anything else counts
// as zero, and negatives are clamped to zero.
package forminput

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"premium-estimator/internal/model"
)

var (
	// Income is entered in units of 10,000 yen.
	incomeUnit = decimal.NewFromInt(10000)
	maxIncome  = decimal.New(1, 15)
)

var (
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
)

// FieldError is a blocking input condition tied to one form field.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ErrIncomeRequired is returned when income is missing, unparseable or rounds
// to zero yen.
var ErrIncomeRequired = &FieldError{
	Field:   "income",
	Code:    "INCOME_REQUIRED",
	Message: "前年の総所得を入力してください。",
}

func Parse(req model.CalculationRequest) (model.HouseholdInput, error) {
	in := model.HouseholdInput{
		AnnualIncome:        Income(req.Income.String()),
		PrimaryAge:          Int(req.Age.String()),
		SpouseStatus:        Spouse(req.SpouseAge.String()),
		PreschoolDependents: Int(req.PreschoolDependents.String()),
		OtherDependents:     Int(req.OtherDependents.String()),
	}
	if in.AnnualIncome == 0 {
		return model.HouseholdInput{}, ErrIncomeRequired
	}
	return in, nil
}

// Income converts a 10,000-yen form value into whole yen.
func Income(raw string) int64 {
	m := leadingFloat.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(m, "+"))
	if err != nil || d.IsNegative() {
		return 0
	}
	return model.Yen(decimal.Min(d.Mul(incomeUnit), maxIncome))
}

// Int reads a non-negative integer form value.
func Int(raw string) int {
	m := leadingInt.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0
	}
	// out-of-range input saturates at the int32 bounds
	n, _ := strconv.ParseInt(m, 10, 32)
	if n < 0 {
		return 0
	}
	return int(n)
}

// Spouse maps the spouse select value. Any present value other than the
// 40-or-over band counts as a spouse under 40.
func Spouse(raw string) model.SpouseStatus {
	switch strings.TrimSpace(raw) {
	case "", string(model.SpouseNone):
		return model.SpouseNone
	case string(model.Spouse40OrOver):
		return model.Spouse40OrOver
	}
	return model.SpouseUnder40
}
