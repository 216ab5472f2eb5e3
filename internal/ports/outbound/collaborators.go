// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the boundaries the analysis pipeline uses to reach external systems.
package outbound

import "context"

// FoodNutrition is a best-effort per-100g-equivalent nutrition record
// returned by an external lookup.
type FoodNutrition struct {
	Food     string
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}

// NutritionLookup provides best-effort per-100g nutrition for a free-text
// food name. A (nil, nil) return means no data; errors are treated by
// callers exactly like misses.
type NutritionLookup interface {
	Search(ctx context.Context, foodName string) (*FoodNutrition, error)
}

// StoredRecipe is a record from the local recipe store. Ingredients are the
// raw ingredient lines, already flattened to plain strings.
type StoredRecipe struct {
	ID          string
	Title       string
	Ingredients []string
}

// RecipeStore is the read-only local recipe store, queried by
// case-insensitive substring match on the dish title.
type RecipeStore interface {
	FindByTitle(ctx context.Context, dishName string) (*StoredRecipe, error)
}

// IngredientGenerator synthesizes an ingredient list for a dish when the
// local store has no recipe. Implementations must tolerate model failure
// and return an empty list rather than partial garbage.
type IngredientGenerator interface {
	GenerateIngredients(ctx context.Context, dishName string) ([]string, error)
}

// ExtractedFood is one food/quantity pair pulled out of free text.
type ExtractedFood struct {
	Food     string
	Quantity float64
}

// FoodExtractor extracts candidate food names and quantities from free
// text. Quantity parse failures are reported as 1.0 by implementations.
type FoodExtractor interface {
	Extract(ctx context.Context, text string) ([]ExtractedFood, error)
}

// Embedder turns text into a vector for the similarity search indexes. The
// index caches themselves are precomputed; only query embedding goes
// through this port.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// DishNamer extracts candidate dish/beverage names from free text, the
// entry step of meal analysis. Implementations fall back to the whole
// lower-cased input when nothing is recognized.
type DishNamer interface {
	ExtractDishNames(ctx context.Context, text string) ([]string, error)
}
