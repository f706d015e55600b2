package models

import "strings"

// Ingredient categories form a closed set. Stored records may carry an
// empty category; readers normalize that to CategoryOther without mutating
// what was written.
const (
	CategoryProduce   = "produce"
	CategoryDairy     = "dairy"
	CategoryMeat      = "meat"
	CategorySeafood   = "seafood"
	CategoryBakery    = "bakery"
	CategoryPantry    = "pantry"
	CategorySpices    = "spices"
	CategoryFrozen    = "frozen"
	CategoryBeverages = "beverages"
	CategoryOther     = "other"
)

var categories = map[string]struct{}{
	CategoryProduce:   {},
	CategoryDairy:     {},
	CategoryMeat:      {},
	CategorySeafood:   {},
	CategoryBakery:    {},
	CategoryPantry:    {},
	CategorySpices:    {},
	CategoryFrozen:    {},
	CategoryBeverages: {},
	CategoryOther:     {},
}

// ValidCategory reports whether value names one of the known ingredient categories.
func ValidCategory(value string) bool {
	_, ok := categories[value]
	return ok
}

// NormalizeCategory maps an absent or unknown category to CategoryOther.
func NormalizeCategory(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if ValidCategory(trimmed) {
		return trimmed
	}
	return CategoryOther
}
