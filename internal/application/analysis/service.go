package analysis

import (
	"context"
	"strings"

	"github.com/platewise/platewise/internal/domain/nutrition"
	"github.com/platewise/platewise/internal/infrastructure/monitoring"
	"github.com/platewise/platewise/internal/ports/outbound"
	"github.com/platewise/platewise/pkg/errors"
	"go.uber.org/zap"
)

// dishKeywords mark single-word names that are still composite dishes or
// beverages worth an ingredient breakdown.
var dishKeywords = []string{
	"soup", "salad", "pizza", "burger", "sandwich", "stew", "curry",
	"cake", "pie", "pasta", "noodles", "omelet", "dumpling", "fried",
	"steak", "fries", "gratin", "casserole", "bake", "coke", "tea", "coffee",
}

// MealAnalyzer is the top-level entry point: it extracts candidate names
// from free text, routes dishes through the DishResolver and standalone
// items through the NutritionResolver, and shapes the combined result.
type MealAnalyzer struct {
	namer      outbound.DishNamer
	extractors []outbound.FoodExtractor
	dishes     *DishResolver
	resolver   *NutritionResolver
	metrics    *monitoring.MetricsCollector
	logger     *zap.Logger
}

// NewMealAnalyzer creates a meal analyzer. Extractors are consulted in
// order and their outputs merged by food name, keeping the maximum
// reported quantity per name.
func NewMealAnalyzer(
	namer outbound.DishNamer,
	extractors []outbound.FoodExtractor,
	dishes *DishResolver,
	resolver *NutritionResolver,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *MealAnalyzer {
	return &MealAnalyzer{
		namer:      namer,
		extractors: extractors,
		dishes:     dishes,
		resolver:   resolver,
		metrics:    metrics,
		logger:     logger.Named("meal-analyzer"),
	}
}

// Analyze processes free text describing a meal. When useStandardRecipe is
// false the dish route is skipped and the text is treated as a bag of
// independent foods. The only error condition is nothing being recognized
// at all; every other upstream failure degrades internally.
func (a *MealAnalyzer) Analyze(ctx context.Context, text string, useStandardRecipe bool) (*nutrition.MealResult, error) {
	names := a.extractNames(ctx, text)
	if len(names) == 0 || !useStandardRecipe {
		return a.processMultiple(ctx, text)
	}

	var dishesFound []nutrition.DishAnalysis
	var otherFoods []outbound.ExtractedFood

	for _, name := range names {
		if !isProbablyDish(name) {
			otherFoods = append(otherFoods, outbound.ExtractedFood{Food: name, Quantity: 1.0})
			continue
		}
		title, ingredients, source := a.dishes.ResolveDish(ctx, name)
		if len(ingredients) == 0 {
			// unresolvable dish degrades to a standalone item
			a.logger.Debug("dish unresolved, treating as standalone item", zap.String("dish", name))
			otherFoods = append(otherFoods, outbound.ExtractedFood{Food: name, Quantity: 1.0})
			continue
		}
		main, secondary := a.dishes.ClassifyIngredients(ingredients)
		ordered := append(main, secondary...)
		dishesFound = append(dishesFound, a.dishes.AnalyzeIngredients(ctx, title, ordered, source))
	}

	otherFoods = a.supplementStandaloneItems(ctx, text, dishesFound, otherFoods)

	if len(dishesFound) == 0 && len(otherFoods) == 0 {
		return a.processMultiple(ctx, text)
	}

	if len(dishesFound) == 1 && len(otherFoods) == 0 {
		a.metrics.RecordAnalysis(string(nutrition.ResultTypeDish))
		return &nutrition.MealResult{
			Type: nutrition.ResultTypeDish,
			Dish: &dishesFound[0],
		}, nil
	}

	items := make([]nutrition.IngredientRecord, 0, len(otherFoods))
	for _, f := range otherFoods {
		values := a.resolver.Resolve(ctx, f.Food, f.Quantity, "")
		items = append(items, nutrition.IngredientRecord{
			FoodName:  f.Food,
			Quantity:  f.Quantity,
			Nutrition: values,
		})
	}

	a.metrics.RecordAnalysis(string(nutrition.ResultTypeCombined))
	return &nutrition.MealResult{
		Type:   nutrition.ResultTypeCombined,
		Dishes: dishesFound,
		Items:  items,
	}, nil
}

// extractNames pulls candidate dish/food names from the text. Extraction
// failure is treated as "no names" so the analyzer can fall back to direct
// multi-item resolution.
func (a *MealAnalyzer) extractNames(ctx context.Context, text string) []string {
	names, err := a.namer.ExtractDishNames(ctx, text)
	if err != nil {
		a.metrics.RecordExternalFailure("dish-namer")
		a.logger.Warn("dish name extraction failed", zap.Error(err))
		return nil
	}
	return names
}

// supplementStandaloneItems runs the extractors over the raw text and adds
// foods that are not already covered by an identified dish or an existing
// standalone entry.
func (a *MealAnalyzer) supplementStandaloneItems(
	ctx context.Context,
	text string,
	dishes []nutrition.DishAnalysis,
	others []outbound.ExtractedFood,
) []outbound.ExtractedFood {
	if len(a.extractors) == 0 {
		return others
	}
	extracted, err := a.extractors[0].Extract(ctx, text)
	if err != nil {
		a.metrics.RecordExternalFailure("food-extractor")
		a.logger.Warn("supplementary extraction failed", zap.Error(err))
		return others
	}

	for _, food := range extracted {
		name := strings.ToLower(food.Food)
		covered := false
		for _, dish := range dishes {
			if strings.Contains(dish.DishName, name) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		duplicate := false
		for _, existing := range others {
			if name == existing.Food {
				duplicate = true
				break
			}
		}
		if !duplicate {
			others = append(others, outbound.ExtractedFood{Food: name, Quantity: food.Quantity})
		}
	}
	return others
}

// processMultiple treats the whole text as a bag of foods: merge all
// extractor outputs, resolve each independently and sum.
func (a *MealAnalyzer) processMultiple(ctx context.Context, text string) (*nutrition.MealResult, error) {
	extracted := a.mergeExtractions(ctx, text)
	if len(extracted) == 0 {
		a.metrics.RecordAnalysis("unresolved")
		return nil, errors.NewNothingRecognizedError(text)
	}

	if len(extracted) == 1 {
		f := extracted[0]
		values := a.resolver.Resolve(ctx, f.Food, f.Quantity, "")
		a.metrics.RecordAnalysis(string(nutrition.ResultTypeSingle))
		return &nutrition.MealResult{
			Type: nutrition.ResultTypeSingle,
			Items: []nutrition.IngredientRecord{{
				FoodName:  f.Food,
				Quantity:  f.Quantity,
				Nutrition: values,
			}},
		}, nil
	}

	items := make([]nutrition.IngredientRecord, 0, len(extracted))
	var total nutrition.Values
	for _, f := range extracted {
		values := a.resolver.Resolve(ctx, f.Food, f.Quantity, "")
		items = append(items, nutrition.IngredientRecord{
			FoodName:  f.Food,
			Quantity:  f.Quantity,
			Nutrition: values,
		})
		total = total.Add(values)
	}
	total = total.Round()

	a.metrics.RecordAnalysis(string(nutrition.ResultTypeMultiple))
	return &nutrition.MealResult{
		Type:  nutrition.ResultTypeMultiple,
		Items: items,
		Total: &total,
	}, nil
}

// mergeExtractions unions extractor outputs by lower-cased food name,
// keeping the maximum reported quantity per name. Insertion order is
// preserved so results are deterministic.
func (a *MealAnalyzer) mergeExtractions(ctx context.Context, text string) []outbound.ExtractedFood {
	var order []string
	quantities := make(map[string]float64)

	for _, extractor := range a.extractors {
		foods, err := extractor.Extract(ctx, text)
		if err != nil {
			a.metrics.RecordExternalFailure("food-extractor")
			a.logger.Warn("extractor failed, continuing with remaining extractors", zap.Error(err))
			continue
		}
		for _, f := range foods {
			name := strings.ToLower(strings.TrimSpace(f.Food))
			if name == "" {
				continue
			}
			qty := f.Quantity
			if qty <= 0 {
				qty = 1.0
			}
			if existing, ok := quantities[name]; ok {
				if qty > existing {
					quantities[name] = qty
				}
			} else {
				order = append(order, name)
				quantities[name] = qty
			}
		}
	}

	merged := make([]outbound.ExtractedFood, 0, len(order))
	for _, name := range order {
		merged = append(merged, outbound.ExtractedFood{Food: name, Quantity: quantities[name]})
	}
	return merged
}

// isProbablyDish reports whether a name likely refers to a composite dish
// or beverage: multi-word names and dish-keyword hits qualify.
func isProbablyDish(name string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, " ") {
		return true
	}
	return containsAny(lower, dishKeywords)
}
