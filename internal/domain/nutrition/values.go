// Package nutrition contains the value objects and leaf logic of the
// nutrition estimation domain: macro values, quantities, unit conversion,
// ingredient parsing, food categories and the curated known-food table.
package nutrition

import (
	"errors"
	"math"
)

// Values holds absolute macro amounts for a resolved quantity of food.
// Once returned from a resolver these are totals, not per-100g figures.
type Values struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// Validate validates the nutrition values
func (v Values) Validate() error {
	if v.Calories < 0 || v.Protein < 0 || v.Fat < 0 || v.Carbs < 0 {
		return errors.New("nutrition values cannot be negative")
	}
	return nil
}

// Add returns the element-wise sum of two nutrition values
func (v Values) Add(other Values) Values {
	return Values{
		Calories: v.Calories + other.Calories,
		Protein:  v.Protein + other.Protein,
		Fat:      v.Fat + other.Fat,
		Carbs:    v.Carbs + other.Carbs,
	}
}

// Scale returns the values multiplied by factor
func (v Values) Scale(factor float64) Values {
	return Values{
		Calories: v.Calories * factor,
		Protein:  v.Protein * factor,
		Fat:      v.Fat * factor,
		Carbs:    v.Carbs * factor,
	}
}

// Round returns the values rounded to two decimal places
func (v Values) Round() Values {
	return Values{
		Calories: round2(v.Calories),
		Protein:  round2(v.Protein),
		Fat:      round2(v.Fat),
		Carbs:    round2(v.Carbs),
	}
}

// IsZero reports whether all four fields are zero
func (v Values) IsZero() bool {
	return v.Calories == 0 && v.Protein == 0 && v.Fat == 0 && v.Carbs == 0
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// FoodQuantity is a parsed food reference. An empty unit means "assume a
// standard 100g/ml serving per quantity unless a table override applies".
type FoodQuantity struct {
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Validate validates the food quantity
func (f FoodQuantity) Validate() error {
	if f.FoodName == "" {
		return errors.New("food name is required")
	}
	if f.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}

// IngredientRecord is one resolved ingredient inside an analysis result.
type IngredientRecord struct {
	FoodName  string  `json:"food_name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Nutrition Values  `json:"nutrition"`
}

// DishAnalysis is the per-dish breakdown. Total always equals the
// element-wise sum of the ingredient nutrition, possibly rescaled down
// uniformly by the dish calorie ceiling.
type DishAnalysis struct {
	DishName    string             `json:"dish_name"`
	Source      string             `json:"source,omitempty"`
	Ingredients []IngredientRecord `json:"ingredients"`
	Total       Values             `json:"total_nutrition"`
}

// ResultType discriminates the shape of a MealResult.
type ResultType string

const (
	ResultTypeDish     ResultType = "dish"
	ResultTypeSingle   ResultType = "single"
	ResultTypeMultiple ResultType = "multiple"
	ResultTypeCombined ResultType = "combined"
)

// MealResult is the tagged union produced by one analysis call.
//
//   - Dish: exactly one dish and nothing else; Dish is set.
//   - Single: one standalone item; Items has one entry.
//   - Multiple: several standalone items; Items and Total are set.
//   - Combined: Dishes plus Items, each independently resolved. Totals for
//     combined results are summed by the caller, not precomputed here.
type MealResult struct {
	Type   ResultType         `json:"type"`
	Dish   *DishAnalysis      `json:"dish,omitempty"`
	Dishes []DishAnalysis     `json:"dishes,omitempty"`
	Items  []IngredientRecord `json:"items,omitempty"`
	Total  *Values            `json:"total_nutrition,omitempty"`
}
