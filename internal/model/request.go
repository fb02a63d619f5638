package model

import (
	"bytes"
	"strconv"
)

// CalculationRequest carries the raw form fields exactly as the page submits
// them. Coercion into a HouseholdInput happens in the forminput package.
type CalculationRequest struct {
	Income              FormValue `json:"income"`
	Age                 FormValue `json:"age"`
	SpouseAge           FormValue `json:"spouse_age"`
	PreschoolDependents FormValue `json:"preschool_dependents"`
	OtherDependents     FormValue `json:"other_dependents"`
}

// FormValue is a form field that accepts either a JSON string or a JSON number.
type FormValue string

func (v *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	*v = FormValue(b)
	return nil
}

func (v FormValue) String() string {
	return string(v)
}
