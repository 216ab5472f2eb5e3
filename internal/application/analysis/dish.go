package analysis

import (
	"context"
	"math"
	"strings"

	"github.com/platewise/platewise/internal/domain/nutrition"
	"github.com/platewise/platewise/internal/infrastructure/monitoring"
	"github.com/platewise/platewise/internal/ports/outbound"
	"github.com/platewise/platewise/pkg/errors"
	"go.uber.org/zap"
)

// Ingredient sources reported on dish analyses.
const (
	SourceDatabase  = "database"
	SourceGenerated = "generated"
)

// mainKeywords mark load-bearing ingredients; subKeywords mark seasonings
// and condiments. Anything matching neither is assumed to be main.
var (
	mainKeywords = []string{
		"chicken", "beef", "pork", "fish", "egg", "shrimp", "rice", "noodles",
		"pasta", "milk", "tomato", "cheese", "penne", "turkey", "sausage",
		"coke", "coffee", "tea",
	}
	subKeywords = []string{
		"salt", "pepper", "oil", "garlic", "onion", "butter", "sugar", "cream",
		"flour", "vinegar", "powder", "seasoning", "herbs", "spice", "sauce",
		"chilies",
	}
)

// defaultDishCeiling caps total dish calories when no dish-type keyword
// gives a tighter bound. Tuning constant, not a derived value.
const defaultDishCeiling = 1200

// DishResolver resolves a dish name to an analyzed ingredient breakdown,
// preferring the local recipe store and falling back to the generative
// collaborator.
type DishResolver struct {
	store     outbound.RecipeStore
	generator outbound.IngredientGenerator
	parser    *nutrition.IngredientParser
	table     *nutrition.KnownFoodTable
	resolver  *NutritionResolver
	metrics   *monitoring.MetricsCollector
	logger    *zap.Logger
}

// NewDishResolver creates a dish resolver.
func NewDishResolver(
	store outbound.RecipeStore,
	generator outbound.IngredientGenerator,
	resolver *NutritionResolver,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *DishResolver {
	return &DishResolver{
		store:     store,
		generator: generator,
		parser:    nutrition.NewIngredientParser(),
		table:     nutrition.NewKnownFoodTable(),
		resolver:  resolver,
		metrics:   metrics,
		logger:    logger.Named("dish-resolver"),
	}
}

// ResolveDish returns the dish title, its ingredient lines and the source
// they came from. An empty ingredient list means the dish could not be
// resolved by either the store or the generative fallback; callers degrade
// it to a standalone item.
func (d *DishResolver) ResolveDish(ctx context.Context, dishName string) (string, []string, string) {
	recipe, err := d.store.FindByTitle(ctx, dishName)
	if err != nil && !errors.Is(err, errors.CodeRecipeNotFound) {
		d.metrics.RecordExternalFailure("recipe-store")
		d.logger.Warn("recipe store query failed",
			zap.String("dish", dishName),
			zap.Error(err))
	}
	if recipe != nil && len(recipe.Ingredients) > 0 {
		return strings.ToLower(recipe.Title), recipe.Ingredients, SourceDatabase
	}

	generated, err := d.generator.GenerateIngredients(ctx, dishName)
	if err != nil {
		d.metrics.RecordExternalFailure("ingredient-generator")
		d.logger.Warn("generative ingredient fallback failed",
			zap.String("dish", dishName),
			zap.Error(err))
		return dishName, nil, ""
	}
	if len(generated) == 0 {
		return dishName, nil, ""
	}
	return dishName, generated, SourceGenerated
}

// ClassifyIngredients splits ingredient lines into main and secondary
// groups by keyword containment. Unmatched ingredients default to main.
func (d *DishResolver) ClassifyIngredients(ingredients []string) (main, secondary []string) {
	for _, ing := range ingredients {
		lower := strings.ToLower(ing)
		switch {
		case containsAny(lower, mainKeywords):
			main = append(main, ing)
		case containsAny(lower, subKeywords):
			secondary = append(secondary, ing)
		default:
			main = append(main, ing)
		}
	}
	return main, secondary
}

// AnalyzeIngredients resolves every ingredient line and aggregates the
// dish total, applying the dish-type calorie ceiling. Dishes whose name
// directly matches a known-food entry bypass per-ingredient resolution and
// use a single synthetic serving instead.
func (d *DishResolver) AnalyzeIngredients(ctx context.Context, dishName string, ingredients []string, source string) nutrition.DishAnalysis {
	if entry, ok := d.table.Match(dishName); ok {
		portion := dishPortionFactor(dishName)
		total := entry.Per100g.Scale(portion).Round()
		return nutrition.DishAnalysis{
			DishName: dishName,
			Source:   source,
			Ingredients: []nutrition.IngredientRecord{{
				FoodName:  entry.Name,
				Quantity:  1,
				Unit:      "serving",
				Nutrition: total,
			}},
			Total: total,
		}
	}

	records := make([]nutrition.IngredientRecord, 0, len(ingredients))
	var total nutrition.Values
	for _, line := range ingredients {
		parsed := d.parser.Parse(line)
		values := d.resolver.Resolve(ctx, parsed.FoodName, parsed.Quantity, parsed.Unit)
		records = append(records, nutrition.IngredientRecord{
			FoodName:  parsed.FoodName,
			Quantity:  round2(parsed.Quantity),
			Unit:      parsed.Unit,
			Nutrition: values,
		})
		total = total.Add(values)
	}

	ceiling := dishCalorieCeiling(dishName)
	if total.Calories > float64(ceiling)*2 {
		// duplicated or mis-extracted ingredients routinely double totals;
		// rescale everything uniformly back to the ceiling
		d.metrics.RecordClamp(monitoring.ClampDishCeiling)
		adjustment := float64(ceiling) / total.Calories
		d.logger.Info("dish total exceeded plausibility ceiling, rescaling",
			zap.String("dish", dishName),
			zap.Float64("raw_calories", total.Calories),
			zap.Int("ceiling", ceiling))
		for i := range records {
			records[i].Nutrition = records[i].Nutrition.Scale(adjustment).Round()
		}
		total = total.Scale(adjustment)
		total.Calories = float64(ceiling)
	}

	return nutrition.DishAnalysis{
		DishName:    dishName,
		Source:      source,
		Ingredients: records,
		Total:       total.Round(),
	}
}

// dishPortionFactor is the default portion (in 100g/ml multiples) assumed
// when a whole dish matches the known-food table directly.
func dishPortionFactor(dishName string) float64 {
	name := strings.ToLower(dishName)
	switch {
	case strings.Contains(name, "mac") && strings.Contains(name, "cheese"):
		return 3.0 // a mac and cheese serving runs about 300g
	case strings.Contains(name, "curry"):
		return 4.0 // curry portions run about 400g
	case strings.Contains(name, "coke"), strings.Contains(name, "cola"):
		return 3.3 // one 330ml can
	}
	return 2.5
}

// dishCalorieCeiling returns the plausibility ceiling for a dish type.
func dishCalorieCeiling(dishName string) int {
	name := strings.ToLower(dishName)
	switch {
	case strings.Contains(name, "curry"):
		return 900
	case strings.Contains(name, "mac") && strings.Contains(name, "cheese"):
		return 700
	case strings.Contains(name, "salad"):
		return 500
	case strings.Contains(name, "soup"):
		return 400
	}
	return defaultDishCeiling
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
