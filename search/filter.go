package search

import (
	"github.com/w-h-a/stockist/index"
	"github.com/w-h-a/stockist/intent"
)

// BuildFilter maps extracted attributes onto index constraints. Absent
// attribute means absent constraint; no wildcard values are ever
// injected. Values pass through unvalidated: the catalogue schema is
// advisory context for the classifier, not a hard constraint here.
func BuildFilter(category string, subcategory string, attrs intent.Attributes) index.Filter {
	filter := index.Filter{}

	equals := map[string]string{
		"category":    category,
		"subcategory": subcategory,
		"color":       attrs.Color,
		"fabric":      attrs.Fabric,
		"technique":   attrs.Technique,
		"pattern":     attrs.Pattern,
	}

	for field, value := range equals {
		if len(value) > 0 {
			filter[field] = index.Condition{Equals: value}
		}
	}

	if attrs.PriceMin != nil || attrs.PriceMax != nil {
		filter["price"] = index.Condition{
			Min: attrs.PriceMin,
			Max: attrs.PriceMax,
		}
	}

	return filter
}
