package units

import "mirepoix/models"

// Convert translates quantity from one unit into another through the shared
// category base. It reports false when the units belong to different
// categories or either side is imprecise.
func Convert(quantity float64, from, to Unit) (float64, bool) {
	if !AreCompatible(from, to) {
		return 0, false
	}
	fromFactor, _ := factorOf(from)
	toFactor, _ := factorOf(to)
	return quantity * fromFactor / toFactor, true
}

// AreCompatible reports whether two units can be converted into one another.
// Imprecise units are never compatible, not even with themselves: two
// "pinch" values share an identity but not a numeric scale.
func AreCompatible(a, b Unit) bool {
	if _, ok := factorOf(a); !ok {
		return false
	}
	if _, ok := factorOf(b); !ok {
		return false
	}
	return CategoryOf(a) == CategoryOf(b)
}

// Ladders used by ConvertToSystem, ordered largest to smallest. The chosen
// unit is the largest one whose converted value stays at or above the
// system's readability floor, which keeps amounts like 0.75 cup from being
// reported as 0.375 pint.
var systemLadders = map[System]map[Category][]Unit{
	US: {
		Volume: {Gallon, Quart, Pint, Cup, FluidOunce, Tablespoon, Teaspoon},
		Weight: {Pound, Ounce},
	},
	Metric: {
		Volume: {Liter, Milliliter},
		Weight: {Kilogram, Gram},
	},
}

// readabilityFloor is the smallest converted value considered friendly for
// a unit pick. US cooks read fractional cups and spoons comfortably, so the
// US floor sits below one; metric amounts below one roll down to the next
// smaller unit (0.6 l reads better as 600 ml).
var readabilityFloor = map[System]float64{
	US:     0.5,
	Metric: 1,
}

// ConvertToSystem returns a copy of the ingredient expressed in the best
// fitting unit of the target system. Imprecise units and ingredients already
// in the target system come back unchanged; the returned value is always a
// fresh copy, never the caller's ingredient.
func ConvertToSystem(ingredient models.Ingredient, target System) models.Ingredient {
	out := ingredient

	unit, ok := Parse(ingredient.Unit)
	if !ok {
		return out
	}
	if _, numeric := factorOf(unit); !numeric {
		return out
	}
	if SystemOf(unit) == target {
		return out
	}

	ladder := systemLadders[target][CategoryOf(unit)]
	if len(ladder) == 0 {
		return out
	}

	floor := readabilityFloor[target]
	best := ladder[len(ladder)-1]
	bestValue, _ := Convert(ingredient.Quantity, unit, best)
	for _, candidate := range ladder {
		value, _ := Convert(ingredient.Quantity, unit, candidate)
		if value >= floor {
			best = candidate
			bestValue = value
			break
		}
	}

	out.Quantity = bestValue
	out.Unit = string(best)
	return out
}
