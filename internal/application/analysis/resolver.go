// Package analysis implements the nutrition resolution pipeline: layered
// food lookup, dish resolution and meal-level orchestration.
package analysis

import (
	"context"
	"strings"

	"github.com/platewise/platewise/internal/domain/nutrition"
	"github.com/platewise/platewise/internal/infrastructure/monitoring"
	"github.com/platewise/platewise/internal/ports/outbound"
	"go.uber.org/zap"
)

// heuristicFactorCap bounds the serving factor when nothing but the
// keyword heuristic is available.
const heuristicFactorCap = 8

// NutritionResolver is the central numeric engine. It resolves a free-text
// food name and quantity to absolute macro values by consulting, in order:
// the zero-calorie alias list, the curated known-food table, the external
// nutrition lookup (with category-aware plausibility clamping), and finally
// a keyword heuristic. It never fails; every path produces a value.
type NutritionResolver struct {
	table      *nutrition.KnownFoodTable
	units      *nutrition.UnitConverter
	classifier *nutrition.Classifier
	lookup     outbound.NutritionLookup
	metrics    *monitoring.MetricsCollector
	logger     *zap.Logger
}

// NewNutritionResolver creates a nutrition resolver.
func NewNutritionResolver(
	lookup outbound.NutritionLookup,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *NutritionResolver {
	return &NutritionResolver{
		table:      nutrition.NewKnownFoodTable(),
		units:      nutrition.NewUnitConverter(),
		classifier: nutrition.NewClassifier(),
		lookup:     lookup,
		metrics:    metrics,
		logger:     logger.Named("nutrition-resolver"),
	}
}

// Resolve computes absolute nutrition values for the given food and
// quantity. An empty unit means "quantity standard 100g/ml servings".
func (r *NutritionResolver) Resolve(ctx context.Context, foodName string, quantity float64, unit string) nutrition.Values {
	food := strings.ToLower(strings.TrimSpace(foodName))
	unit = strings.ToLower(strings.TrimSpace(unit))

	if nutrition.IsZeroCalorie(food) {
		r.metrics.RecordLookupTier(monitoring.TierZeroCalorie)
		return nutrition.Values{}
	}

	var grams float64
	if unit != "" {
		grams = r.units.ToGrams(quantity, unit)
	} else {
		// bare quantity counts standard 100-unit servings
		grams = quantity * 100
	}
	factor := grams / 100.0

	if entry, ok := r.table.Match(food); ok {
		if unit == "" && entry.DefaultFactor > 0 {
			factor = entry.DefaultFactor
		}
		if entry.FactorCap > 0 && factor > entry.FactorCap {
			r.metrics.RecordClamp(monitoring.ClampFactorCap)
			factor = entry.FactorCap
		}
		r.metrics.RecordLookupTier(monitoring.TierKnownFood)
		return entry.Per100g.Scale(factor).Round()
	}

	if values, ok := r.resolveExternal(ctx, food, factor); ok {
		return values
	}

	r.metrics.RecordLookupTier(monitoring.TierHeuristic)
	return heuristicEstimate(food, factor)
}

// resolveExternal consults the external nutrition lookup and applies the
// category plausibility clamp. A failed or empty lookup returns ok=false so
// the caller can fall through to the heuristic.
func (r *NutritionResolver) resolveExternal(ctx context.Context, food string, factor float64) (nutrition.Values, bool) {
	data, err := r.lookup.Search(ctx, food)
	if err != nil {
		r.metrics.RecordExternalFailure("nutrition-lookup")
		r.logger.Warn("external nutrition lookup failed, falling back",
			zap.String("food", food),
			zap.Error(err))
		return nutrition.Values{}, false
	}
	if data == nil {
		return nutrition.Values{}, false
	}

	category := r.classifier.Classify(food, data.Calories)
	profile := r.classifier.Profile(category)

	per100g := nutrition.Values{
		Calories: data.Calories,
		Protein:  data.Protein,
		Fat:      data.Fat,
		Carbs:    data.Carbs,
	}

	// Free-text matching against large food databases returns the wrong
	// row often enough that densities far outside the category range are
	// treated as data errors and replaced with the range midpoint.
	if data.Calories < profile.MinCaloriesPer100g*0.5 || data.Calories > profile.MaxCaloriesPer100g*2 {
		r.metrics.RecordClamp(monitoring.ClampOutlierRescale)
		adjusted := (profile.MinCaloriesPer100g + profile.MaxCaloriesPer100g) / 2
		ratio := adjusted / maxFloat(data.Calories, 1)
		r.logger.Debug("implausible calorie density corrected",
			zap.String("food", food),
			zap.String("category", string(category)),
			zap.Float64("reported", data.Calories),
			zap.Float64("adjusted", adjusted))
		per100g = nutrition.Values{
			Calories: adjusted,
			Protein:  data.Protein * ratio,
			Fat:      data.Fat * ratio,
			Carbs:    data.Carbs * ratio,
		}
		r.metrics.RecordLookupTier(monitoring.TierExternal)
		return per100g.Scale(factor).Round(), true
	}

	if maxFactor := profile.MaxServingFactor; factor > maxFactor {
		r.metrics.RecordClamp(monitoring.ClampFactorCap)
		factor = maxFactor
	}
	r.metrics.RecordLookupTier(monitoring.TierExternal)
	return per100g.Scale(factor).Round(), true
}

type heuristicProfile struct {
	words   []string
	per100g nutrition.Values
}

// heuristicProfiles are checked in order; the first keyword hit wins.
var heuristicProfiles = []heuristicProfile{
	{[]string{"chicken", "beef", "pork", "fish", "meat"}, nutrition.Values{Calories: 180, Protein: 25, Fat: 10, Carbs: 0}},
	{[]string{"rice", "pasta", "noodle", "bread"}, nutrition.Values{Calories: 130, Protein: 4, Fat: 1, Carbs: 25}},
	{[]string{"vegetable", "carrot", "broccoli", "spinach"}, nutrition.Values{Calories: 30, Protein: 2, Fat: 0.3, Carbs: 6}},
	{[]string{"fruit", "apple", "orange", "banana"}, nutrition.Values{Calories: 60, Protein: 0.8, Fat: 0.2, Carbs: 15}},
	{[]string{"cheese", "milk", "yogurt", "cream", "dairy"}, nutrition.Values{Calories: 130, Protein: 7, Fat: 9, Carbs: 5}},
}

// genericPer100g is the last-resort guess for foods no keyword matches.
var genericPer100g = nutrition.Values{Calories: 100, Protein: 5, Fat: 5, Carbs: 10}

// heuristicEstimate guesses nutrition from the food name alone when no
// table entry and no external data exist.
func heuristicEstimate(food string, factor float64) nutrition.Values {
	per100g := genericPer100g
	for _, p := range heuristicProfiles {
		if containsAny(food, p.words) {
			per100g = p.per100g
			break
		}
	}
	if factor > heuristicFactorCap {
		factor = heuristicFactorCap
	}
	return per100g.Scale(factor).Round()
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
