package nutrition

import "strings"

// FoodCategory is a coarse food class used for plausibility bounds.
type FoodCategory string

const (
	CategoryMeat      FoodCategory = "meat"
	CategoryGrain     FoodCategory = "grain"
	CategoryVegetable FoodCategory = "vegetable"
	CategoryFruit     FoodCategory = "fruit"
	CategoryDairy     FoodCategory = "dairy"
	CategoryOil       FoodCategory = "oil"
	CategoryBeverage  FoodCategory = "beverage"
	CategoryUnknown   FoodCategory = "unknown"
)

// CategoryProfile bounds what a category can plausibly contain per 100g and
// how many 100g/ml multiples one serving can reasonably reach. The numbers
// are empirical tuning constants, not derived invariants.
type CategoryProfile struct {
	Category       FoodCategory
	MinCaloriesPer100g float64
	MaxCaloriesPer100g float64
	MaxServingFactor   float64
}

type categoryKeywords struct {
	category FoodCategory
	words    []string
}

// Classifier maps food names (plus an observed calorie density) to a
// FoodCategory. Keyword lists are checked in a fixed order; the first
// matching category wins.
type Classifier struct {
	keywords []categoryKeywords
	profiles map[FoodCategory]CategoryProfile
}

// NewClassifier creates a classifier with the fixed keyword lists and
// category profiles.
func NewClassifier() *Classifier {
	return &Classifier{
		keywords: []categoryKeywords{
			{CategoryMeat, []string{"chicken", "beef", "pork", "fish", "meat", "turkey"}},
			{CategoryGrain, []string{"rice", "pasta", "noodle", "bread", "cereal", "grain"}},
			{CategoryVegetable, []string{"vegetable", "carrot", "broccoli", "spinach", "lettuce"}},
			{CategoryFruit, []string{"fruit", "apple", "orange", "banana", "berry"}},
			{CategoryDairy, []string{"milk", "cheese", "yogurt", "cream", "dairy"}},
			{CategoryOil, []string{"oil", "butter", "margarine", "lard"}},
			{CategoryBeverage, []string{"drink", "beverage", "water", "juice", "soda", "coke", "cola"}},
		},
		profiles: map[FoodCategory]CategoryProfile{
			CategoryMeat:      {CategoryMeat, 100, 300, 5},
			CategoryGrain:     {CategoryGrain, 100, 200, 8},
			CategoryVegetable: {CategoryVegetable, 20, 80, 10},
			CategoryFruit:     {CategoryFruit, 40, 100, 6},
			CategoryDairy:     {CategoryDairy, 50, 400, 8},
			CategoryOil:       {CategoryOil, 800, 900, 2},
			CategoryBeverage:  {CategoryBeverage, 0, 50, 15},
			CategoryUnknown:   {CategoryUnknown, 50, 300, 10},
		},
	}
}

// Classify determines the category by keyword containment first, then falls
// back to calorie-density thresholds when no keyword matches.
func (c *Classifier) Classify(foodName string, caloriesPer100g float64) FoodCategory {
	food := strings.ToLower(foodName)
	for _, kw := range c.keywords {
		for _, word := range kw.words {
			if strings.Contains(food, word) {
				return kw.category
			}
		}
	}
	switch {
	case caloriesPer100g > 800:
		return CategoryOil
	case caloriesPer100g > 300:
		return CategoryMeat
	case caloriesPer100g > 200:
		return CategoryGrain
	case caloriesPer100g < 30:
		return CategoryVegetable
	}
	return CategoryUnknown
}

// Profile returns the profile for a category, defaulting to unknown.
func (c *Classifier) Profile(category FoodCategory) CategoryProfile {
	if p, ok := c.profiles[category]; ok {
		return p
	}
	return c.profiles[CategoryUnknown]
}

// MaxFactor returns the per-category ceiling on how many 100g/ml multiples
// one serving can plausibly be.
func (c *Classifier) MaxFactor(category FoodCategory) float64 {
	return c.Profile(category).MaxServingFactor
}
