// Package units defines the measurement vocabulary shared by recipes and
// shopping lists: unit categories, us/metric conversion factors, quantity
// scaling, and the practical-rounding policy applied to converted amounts.
package units

import "strings"

// Unit identifies a single measurement unit from the closed vocabulary.
type Unit string

// Category groups units that share a conversion base.
type Category string

// System tags a unit as customary-US or metric. Imprecise units carry no system.
type System string

const (
	Teaspoon   Unit = "tsp"
	Tablespoon Unit = "tbsp"
	FluidOunce Unit = "fl_oz"
	Cup        Unit = "cup"
	Pint       Unit = "pint"
	Quart      Unit = "quart"
	Gallon     Unit = "gallon"
	Milliliter Unit = "ml"
	Liter      Unit = "l"

	Ounce    Unit = "oz"
	Pound    Unit = "lb"
	Gram     Unit = "g"
	Kilogram Unit = "kg"

	Pinch   Unit = "pinch"
	Dash    Unit = "dash"
	ToTaste Unit = "to_taste"
	Piece   Unit = "piece"
)

const (
	Volume    Category = "volume"
	Weight    Category = "weight"
	Imprecise Category = "imprecise"
)

const (
	US     System = "us"
	Metric System = "metric"
)

type definition struct {
	category Category
	system   System
	// factor converts one of the unit into the category base
	// (milliliter for volume, gram for weight). Zero for imprecise units.
	factor float64
}

var definitions = map[Unit]definition{
	Teaspoon:   {Volume, US, 4.92892159375},
	Tablespoon: {Volume, US, 14.78676478125},
	FluidOunce: {Volume, US, 29.5735295625},
	Cup:        {Volume, US, 236.5882365},
	Pint:       {Volume, US, 473.176473},
	Quart:      {Volume, US, 946.352946},
	Gallon:     {Volume, US, 3785.411784},
	Milliliter: {Volume, Metric, 1},
	Liter:      {Volume, Metric, 1000},

	Ounce:    {Weight, US, 28.349523125},
	Pound:    {Weight, US, 453.59237},
	Gram:     {Weight, Metric, 1},
	Kilogram: {Weight, Metric, 1000},

	Pinch:   {Imprecise, "", 0},
	Dash:    {Imprecise, "", 0},
	ToTaste: {Imprecise, "", 0},
	Piece:   {Imprecise, "", 0},
}

var aliases = map[string]Unit{
	"teaspoon":    Teaspoon,
	"teaspoons":   Teaspoon,
	"tsp":         Teaspoon,
	"tablespoon":  Tablespoon,
	"tablespoons": Tablespoon,
	"tbsp":        Tablespoon,
	"fluid ounce": FluidOunce,
	"fl oz":       FluidOunce,
	"fl_oz":       FluidOunce,
	"floz":        FluidOunce,
	"cup":         Cup,
	"cups":        Cup,
	"pint":        Pint,
	"pints":       Pint,
	"pt":          Pint,
	"quart":       Quart,
	"quarts":      Quart,
	"qt":          Quart,
	"gallon":      Gallon,
	"gallons":     Gallon,
	"gal":         Gallon,
	"milliliter":  Milliliter,
	"milliliters": Milliliter,
	"millilitre":  Milliliter,
	"ml":          Milliliter,
	"liter":       Liter,
	"liters":      Liter,
	"litre":       Liter,
	"l":           Liter,
	"ounce":       Ounce,
	"ounces":      Ounce,
	"oz":          Ounce,
	"pound":       Pound,
	"pounds":      Pound,
	"lb":          Pound,
	"lbs":         Pound,
	"gram":        Gram,
	"grams":       Gram,
	"g":           Gram,
	"kilogram":    Kilogram,
	"kilograms":   Kilogram,
	"kg":          Kilogram,
	"pinch":       Pinch,
	"pinches":     Pinch,
	"dash":        Dash,
	"dashes":      Dash,
	"to taste":    ToTaste,
	"to_taste":    ToTaste,
	"piece":       Piece,
	"pieces":      Piece,
}

// Parse resolves a user-supplied unit spelling into its canonical Unit.
func Parse(value string) (Unit, bool) {
	key := strings.ToLower(strings.TrimSpace(value))
	unit, ok := aliases[key]
	return unit, ok
}

// Known reports whether u belongs to the vocabulary.
func Known(u Unit) bool {
	_, ok := definitions[u]
	return ok
}

// CategoryOf returns the category a unit belongs to, or empty for unknown units.
func CategoryOf(u Unit) Category {
	return definitions[u].category
}

// SystemOf returns the measurement system tag, empty for imprecise or unknown units.
func SystemOf(u Unit) System {
	return definitions[u].system
}

// factorOf returns the base-unit multiplier; ok is false for imprecise or
// unknown units, which have no numeric conversion.
func factorOf(u Unit) (float64, bool) {
	def, ok := definitions[u]
	if !ok || def.factor == 0 {
		return 0, false
	}
	return def.factor, true
}

// ParseSystem resolves "us" or "metric".
func ParseSystem(value string) (System, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "us":
		return US, true
	case "metric":
		return Metric, true
	default:
		return "", false
	}
}
