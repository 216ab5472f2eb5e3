package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngredientParserParse(t *testing.T) {
	parser := NewIngredientParser()

	tests := []struct {
		name     string
		line     string
		expected FoodQuantity
	}{
		{
			name:     "quantity with unit",
			line:     "200g chicken breast",
			expected: FoodQuantity{FoodName: "chicken breast", Quantity: 200, Unit: "g"},
		},
		{
			name:     "quantity without unit",
			line:     "2 eggs",
			expected: FoodQuantity{FoodName: "eggs", Quantity: 2, Unit: ""},
		},
		{
			name:     "fraction",
			line:     "1/2 cup milk",
			expected: FoodQuantity{FoodName: "milk", Quantity: 0.5, Unit: "cup"},
		},
		{
			name:     "mixed number sums parts",
			line:     "1 1/2 cups flour",
			expected: FoodQuantity{FoodName: "flour", Quantity: 1.5, Unit: "cups"},
		},
		{
			name:     "no leading number defaults to one",
			line:     "Salt to taste",
			expected: FoodQuantity{FoodName: "salt to taste", Quantity: 1.0, Unit: ""},
		},
		{
			name:     "zero denominator counts as one",
			line:     "1/0 onion",
			expected: FoodQuantity{FoodName: "onion", Quantity: 1.0, Unit: ""},
		},
		{
			name:     "name and unit lower cased",
			line:     "330ML Coca-Cola",
			expected: FoodQuantity{FoodName: "coca-cola", Quantity: 330, Unit: "ml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Parse(tt.line)
			assert.Equal(t, tt.expected.FoodName, got.FoodName)
			assert.InDelta(t, tt.expected.Quantity, got.Quantity, 0.001)
			assert.Equal(t, tt.expected.Unit, got.Unit)
		})
	}
}
