package nutrition

import "strings"

// KnownFoodEntry is one curated row of per-100g nutrition data. Entries can
// carry a default serving factor applied when the input had no explicit
// unit, and a hard factor cap for foods where large nominal quantities are
// almost always extraction noise.
type KnownFoodEntry struct {
	Name    string
	Per100g Values

	// DefaultFactor replaces the computed factor when the unit is empty
	// (e.g. cola-family entries assume one 330ml can). Zero means no
	// override.
	DefaultFactor float64

	// FactorCap bounds the factor regardless of input. Zero means no cap.
	FactorCap float64
}

// KnownFoodTable is the curated, read-only table of foods and dishes that
// automated lookup frequently misestimates. Matching is deterministic:
// entries are scanned in order and matched by case-insensitive bidirectional
// substring containment.
type KnownFoodTable struct {
	entries []KnownFoodEntry
}

// NewKnownFoodTable creates the table with its fixed entries.
func NewKnownFoodTable() *KnownFoodTable {
	colaValues := Values{Calories: 37.5, Protein: 0, Fat: 0, Carbs: 10.6}
	macValues := Values{Calories: 164, Protein: 8.5, Fat: 6.3, Carbs: 17.8}
	return &KnownFoodTable{
		entries: []KnownFoodEntry{
			// beverages: one 330ml can assumed when no unit is given, and
			// the factor is capped because multi-liter cola quantities are
			// nearly always extraction errors
			{Name: "coke", Per100g: colaValues, DefaultFactor: 3.3, FactorCap: 10},
			{Name: "cola", Per100g: colaValues, DefaultFactor: 3.3, FactorCap: 10},
			{Name: "coca-cola", Per100g: colaValues, DefaultFactor: 3.3, FactorCap: 10},
			{Name: "pepsi", Per100g: Values{Calories: 41, Protein: 0, Fat: 0, Carbs: 11}, DefaultFactor: 3.3, FactorCap: 10},

			// dishes
			{Name: "mac and cheese", Per100g: macValues, DefaultFactor: 2.5},
			{Name: "macaroni and cheese", Per100g: macValues, DefaultFactor: 2.5},
			{Name: "mac & cheese", Per100g: macValues, DefaultFactor: 2.5},

			// common ingredients
			{Name: "chicken", Per100g: Values{Calories: 165, Protein: 31, Fat: 3.6, Carbs: 0}},
			{Name: "beef", Per100g: Values{Calories: 250, Protein: 26, Fat: 17, Carbs: 0}},
			{Name: "fish", Per100g: Values{Calories: 136, Protein: 20, Fat: 5, Carbs: 0}},
			{Name: "rice", Per100g: Values{Calories: 130, Protein: 2.7, Fat: 0.3, Carbs: 28}},
			{Name: "pasta", Per100g: Values{Calories: 131, Protein: 5, Fat: 1.1, Carbs: 25}},
			{Name: "bread", Per100g: Values{Calories: 265, Protein: 9, Fat: 3.2, Carbs: 49}},
		},
	}
}

// Match returns the first entry whose name is a substring of foodName or of
// which foodName is a substring, case-insensitively. The second return value
// reports whether a match was found.
func (t *KnownFoodTable) Match(foodName string) (KnownFoodEntry, bool) {
	food := strings.ToLower(strings.TrimSpace(foodName))
	for _, e := range t.entries {
		if e.Name == food || strings.Contains(food, e.Name) || strings.Contains(e.Name, food) {
			return e, true
		}
	}
	return KnownFoodEntry{}, false
}

// zeroCalorieAliases lists foods that contribute no macros regardless of
// quantity. The CJK aliases come straight out of production inputs.
var zeroCalorieAliases = map[string]bool{
	"ice":       true,
	"ice cube":  true,
	"ice cubes": true,
	"water":     true,
	"冰":         true,
	"冰块":        true,
}

// IsZeroCalorie reports whether foodName is an ice/water alias.
func IsZeroCalorie(foodName string) bool {
	return zeroCalorieAliases[strings.ToLower(strings.TrimSpace(foodName))]
}
