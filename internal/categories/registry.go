package categories

import "premium-estimator/internal/model"

var registry = map[string]Category{
	model.CategoryMedical: &flatCategory{name: model.CategoryMedical},
	model.CategorySupport: &flatCategory{name: model.CategorySupport},
	model.CategoryCare:    &CareCategory{},
}

var order = []string{
	model.CategoryMedical,
	model.CategorySupport,
	model.CategoryCare,
}

func Get(name string) (Category, bool) {
	c, ok := registry[name]
	return c, ok
}

// All returns every category in assessment order.
func All() []Category {
	out := make([]Category, 0, len(order))
	for _, name := range order {
		out = append(out, registry[name])
	}
	return out
}
