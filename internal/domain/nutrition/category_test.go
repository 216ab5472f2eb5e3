package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifierClassify(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name     string
		food     string
		calories float64
		expected FoodCategory
	}{
		{"keyword beats density", "grilled chicken breast", 30, CategoryMeat},
		{"grain keyword", "fried rice", 150, CategoryGrain},
		{"vegetable keyword", "steamed broccoli", 35, CategoryVegetable},
		{"fruit keyword", "apple pie filling", 200, CategoryFruit},
		{"dairy keyword", "greek yogurt", 60, CategoryDairy},
		{"oil keyword", "olive oil", 884, CategoryOil},
		{"beverage keyword", "diet soda", 45, CategoryBeverage},
		{"density very high is oil", "mystery spread", 850, CategoryOil},
		{"density high is meat", "mystery roast", 350, CategoryMeat},
		{"density moderate is grain", "mystery bake", 250, CategoryGrain},
		{"density low is vegetable", "mystery greens", 15, CategoryVegetable},
		{"density midrange is unknown", "mystery stew", 150, CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.food, tt.calories))
		})
	}
}

func TestClassifierProfile(t *testing.T) {
	classifier := NewClassifier()

	oil := classifier.Profile(CategoryOil)
	assert.Equal(t, 800.0, oil.MinCaloriesPer100g)
	assert.Equal(t, 900.0, oil.MaxCaloriesPer100g)
	assert.Equal(t, 2.0, oil.MaxServingFactor)

	// unrecognized categories fall back to the unknown profile
	fallback := classifier.Profile(FoodCategory("nonsense"))
	assert.Equal(t, CategoryUnknown, fallback.Category)
	assert.Equal(t, 10.0, fallback.MaxServingFactor)
}

func TestClassifierMaxFactor(t *testing.T) {
	classifier := NewClassifier()
	assert.Equal(t, 15.0, classifier.MaxFactor(CategoryBeverage))
	assert.Equal(t, 5.0, classifier.MaxFactor(CategoryMeat))
}
