package analysis

import (
	"context"
	"testing"

	"github.com/platewise/platewise/internal/domain/nutrition"
	"github.com/platewise/platewise/internal/infrastructure/monitoring"
	"github.com/platewise/platewise/internal/ports/outbound"
	apperrors "github.com/platewise/platewise/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubNamer returns fixed dish name candidates.
type stubNamer struct {
	names []string
	err   error
}

func (s *stubNamer) ExtractDishNames(_ context.Context, _ string) ([]string, error) {
	return s.names, s.err
}

// stubExtractor returns fixed extractions.
type stubExtractor struct {
	foods []outbound.ExtractedFood
	err   error
}

func (s *stubExtractor) Extract(_ context.Context, _ string) ([]outbound.ExtractedFood, error) {
	return s.foods, s.err
}

func newTestAnalyzer(namer outbound.DishNamer, extractors []outbound.FoodExtractor, store outbound.RecipeStore, generator outbound.IngredientGenerator) *MealAnalyzer {
	metrics := monitoring.NewMetricsCollector(zap.NewNop())
	resolver := NewNutritionResolver(&stubLookup{}, metrics, zap.NewNop())
	dishes := NewDishResolver(store, generator, resolver, metrics, zap.NewNop())
	return NewMealAnalyzer(namer, extractors, dishes, resolver, metrics, zap.NewNop())
}

func TestAnalyzeSingleDish(t *testing.T) {
	store := &stubRecipeStore{recipes: map[string]*outbound.StoredRecipe{
		"vegetable soup": {
			ID:          "1",
			Title:       "vegetable soup",
			Ingredients: []string{"2 carrots", "1 onion", "4 cups broth"},
		},
	}}
	analyzer := newTestAnalyzer(
		&stubNamer{names: []string{"vegetable soup"}},
		[]outbound.FoodExtractor{&stubExtractor{}},
		store,
		&stubGenerator{},
	)

	result, err := analyzer.Analyze(context.Background(), "I had vegetable soup for lunch", true)
	require.NoError(t, err)
	assert.Equal(t, nutrition.ResultTypeDish, result.Type)
	require.NotNil(t, result.Dish)
	assert.Equal(t, "vegetable soup", result.Dish.DishName)
	assert.Len(t, result.Dish.Ingredients, 3)
	assert.Nil(t, result.Total)
}

func TestAnalyzeDishWithStandaloneItem(t *testing.T) {
	store := &stubRecipeStore{recipes: map[string]*outbound.StoredRecipe{
		"chicken curry": {
			ID:          "1",
			Title:       "chicken curry",
			Ingredients: []string{"300g chicken", "1 cup rice"},
		},
	}}
	extractor := &stubExtractor{foods: []outbound.ExtractedFood{
		{Food: "chicken curry", Quantity: 1},
		{Food: "banana", Quantity: 2},
	}}
	analyzer := newTestAnalyzer(
		&stubNamer{names: []string{"chicken curry"}},
		[]outbound.FoodExtractor{extractor},
		store,
		&stubGenerator{},
	)

	result, err := analyzer.Analyze(context.Background(), "chicken curry and 2 bananas", true)
	require.NoError(t, err)
	assert.Equal(t, nutrition.ResultTypeCombined, result.Type)
	require.Len(t, result.Dishes, 1)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "banana", result.Items[0].FoodName)
	// combined results leave totals to the caller
	assert.Nil(t, result.Total)
}

func TestAnalyzeUnresolvedDishDegradesToItem(t *testing.T) {
	analyzer := newTestAnalyzer(
		&stubNamer{names: []string{"moon cheese platter"}},
		[]outbound.FoodExtractor{&stubExtractor{}},
		&stubRecipeStore{},
		&stubGenerator{},
	)

	result, err := analyzer.Analyze(context.Background(), "moon cheese platter", true)
	require.NoError(t, err)
	assert.Equal(t, nutrition.ResultTypeCombined, result.Type)
	assert.Empty(t, result.Dishes)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "moon cheese platter", result.Items[0].FoodName)
}

func TestAnalyzeStandardRecipeDisabled(t *testing.T) {
	extractor := &stubExtractor{foods: []outbound.ExtractedFood{
		{Food: "chicken", Quantity: 1},
		{Food: "rice", Quantity: 2},
	}}
	analyzer := newTestAnalyzer(
		&stubNamer{names: []string{"chicken curry"}},
		[]outbound.FoodExtractor{extractor},
		&stubRecipeStore{},
		&stubGenerator{},
	)

	result, err := analyzer.Analyze(context.Background(), "chicken and rice", false)
	require.NoError(t, err)
	assert.Equal(t, nutrition.ResultTypeMultiple, result.Type)
	require.Len(t, result.Items, 2)
	require.NotNil(t, result.Total)
	assert.InDelta(t, result.Items[0].Nutrition.Calories+result.Items[1].Nutrition.Calories,
		result.Total.Calories, 0.01)
}

func TestAnalyzeSingleItem(t *testing.T) {
	extractor := &stubExtractor{foods: []outbound.ExtractedFood{
		{Food: "banana", Quantity: 1},
	}}
	analyzer := newTestAnalyzer(
		&stubNamer{},
		[]outbound.FoodExtractor{extractor},
		&stubRecipeStore{},
		&stubGenerator{},
	)

	result, err := analyzer.Analyze(context.Background(), "a banana", true)
	require.NoError(t, err)
	assert.Equal(t, nutrition.ResultTypeSingle, result.Type)
	require.Len(t, result.Items, 1)
	assert.Nil(t, result.Total)
}

func TestAnalyzeNothingRecognized(t *testing.T) {
	analyzer := newTestAnalyzer(
		&stubNamer{},
		[]outbound.FoodExtractor{&stubExtractor{}},
		&stubRecipeStore{},
		&stubGenerator{},
	)

	_, err := analyzer.Analyze(context.Background(), "asdf qwerty", true)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNothingRecognized))
}

func TestMergeExtractionsKeepsMaxQuantity(t *testing.T) {
	first := &stubExtractor{foods: []outbound.ExtractedFood{
		{Food: "Eggs", Quantity: 2},
		{Food: "toast", Quantity: 1},
	}}
	second := &stubExtractor{foods: []outbound.ExtractedFood{
		{Food: "eggs", Quantity: 3},
		{Food: "juice", Quantity: 0},
	}}
	analyzer := newTestAnalyzer(
		&stubNamer{},
		[]outbound.FoodExtractor{first, second},
		&stubRecipeStore{},
		&stubGenerator{},
	)

	merged := analyzer.mergeExtractions(context.Background(), "2 eggs with toast and juice")
	require.Len(t, merged, 3)
	assert.Equal(t, outbound.ExtractedFood{Food: "eggs", Quantity: 3}, merged[0])
	assert.Equal(t, outbound.ExtractedFood{Food: "toast", Quantity: 1}, merged[1])
	assert.Equal(t, outbound.ExtractedFood{Food: "juice", Quantity: 1}, merged[2])
}

func TestIsProbablyDish(t *testing.T) {
	assert.True(t, isProbablyDish("chicken curry"))
	assert.True(t, isProbablyDish("soup"))
	assert.True(t, isProbablyDish("coffee"))
	assert.False(t, isProbablyDish("banana"))
}
