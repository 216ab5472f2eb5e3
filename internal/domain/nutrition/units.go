package nutrition

import "strings"

// UnitConverter normalizes (quantity, unit) pairs to grams. Volume units are
// treated as mass at a 1 g/ml equivalence, which is the convention every
// per-100g table in this package uses.
type UnitConverter struct {
	portionSizes map[string]float64
}

// NewUnitConverter creates a converter with the fixed portion-size table for
// count units (piece, slice, serving).
func NewUnitConverter() *UnitConverter {
	return &UnitConverter{
		portionSizes: map[string]float64{
			"cup":        240, // ml
			"tablespoon": 15,  // ml
			"teaspoon":   5,   // ml
			"slice":      30,  // g
			"piece":      50,  // g
			"serving":    250, // g
		},
	}
}

// ToGrams converts a quantity in the given unit to grams. Unknown units are
// returned unchanged and treated as already being grams; the pipeline
// depends on this silent best-effort default.
func (c *UnitConverter) ToGrams(quantity float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "g", "gram", "grams":
		return quantity
	case "kg", "kilogram", "kilograms":
		return quantity * 1000
	case "oz", "ounce", "ounces":
		return quantity * 28.35
	case "lb", "pound", "pounds":
		return quantity * 453.592
	case "cup", "cups":
		return quantity * 240
	case "tbsp", "tablespoon", "tablespoons":
		return quantity * 15
	case "tsp", "teaspoon", "teaspoons":
		return quantity * 5
	case "ml", "milliliter", "milliliters":
		// 1 g/ml liquid density
		return quantity
	case "piece", "pieces", "slice", "slices":
		size, ok := c.portionSizes[strings.TrimSuffix(strings.ToLower(unit), "s")]
		if !ok {
			size = 30
		}
		return quantity * size
	}
	return quantity
}
