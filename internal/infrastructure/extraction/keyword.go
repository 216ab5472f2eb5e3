// Package extraction provides a lexicon-backed food extractor that works
// without any model call. It serves as the deterministic fallback behind
// the model-based extractor and doubles as the dish name source.
package extraction

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/platewise/platewise/internal/ports/outbound"
	"go.uber.org/zap"
)

var (
	// quantityFirstPattern matches phrasings like "2 cups of rice".
	quantityFirstPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:cups?|tbsps?|tsps?|ounces?|oz|pounds?|lbs?|grams?|g|kilograms?|kg)?\s+of\s+([a-zA-Z\s]+)`)
	// foodFirstPattern matches phrasings like "rice 2 cups".
	foodFirstPattern = regexp.MustCompile(`(?i)([a-zA-Z\s]+)\s+(\d+(?:\.\d+)?)\s*(?:cups?|tbsps?|tsps?|ounces?|oz|pounds?|lbs?|grams?|g|kilograms?|kg)?`)
)

// timeMarkers are scheduling words that cling to food phrases in meal
// descriptions ("pizza last night") and must be stripped.
var timeMarkers = []string{
	"today", "yesterday", "tomorrow", "morning", "evening", "night",
	"afternoon", "last night", "this morning", "now", "later",
}

// commonFoods is the last-resort word scan applied when neither regex
// pattern matched anything.
var commonFoods = []string{
	"apple", "banana", "chicken", "rice", "pasta", "eggs", "milk",
	"beef", "pork", "fish", "bread", "cheese", "yogurt", "salad",
	"pizza", "burger", "sandwich", "soup", "stew", "curry", "noodles", "steak",
}

// LexiconExtractor extracts food mentions with regexes and a common-food
// lexicon. It implements both outbound.FoodExtractor and outbound.DishNamer.
type LexiconExtractor struct {
	logger *zap.Logger
}

// NewLexiconExtractor creates a new lexicon-backed extractor.
func NewLexiconExtractor(logger *zap.Logger) *LexiconExtractor {
	return &LexiconExtractor{logger: logger.Named("lexicon-extractor")}
}

// Extract finds food/quantity pairs in text. Regex patterns run first;
// if neither matches, the text is scanned word by word against the
// common-food lexicon with quantity 1. Duplicates keep the highest
// quantity seen.
func (e *LexiconExtractor) Extract(_ context.Context, text string) ([]outbound.ExtractedFood, error) {
	var candidates []outbound.ExtractedFood

	for _, match := range quantityFirstPattern.FindAllStringSubmatch(text, -1) {
		qty, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			qty = 1.0
		}
		if food := cleanFoodText(match[2]); len(food) >= 2 {
			candidates = append(candidates, outbound.ExtractedFood{Food: food, Quantity: qty})
		}
	}
	for _, match := range foodFirstPattern.FindAllStringSubmatch(text, -1) {
		qty, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			qty = 1.0
		}
		if food := cleanFoodText(match[1]); len(food) >= 2 {
			candidates = append(candidates, outbound.ExtractedFood{Food: food, Quantity: qty})
		}
	}

	if len(candidates) == 0 {
		words := strings.Fields(strings.ToLower(text))
		for _, food := range commonFoods {
			for _, word := range words {
				if word == food {
					candidates = append(candidates, outbound.ExtractedFood{Food: food, Quantity: 1.0})
					break
				}
			}
		}
	}

	return dedupeKeepMax(candidates), nil
}

// ExtractDishNames returns candidate dish names for the text. When the
// extractor finds foods, their names are the candidates; otherwise the
// whole lowercased input is treated as a single dish name so the resolver
// still gets one shot at it.
func (e *LexiconExtractor) ExtractDishNames(ctx context.Context, text string) ([]string, error) {
	foods, err := e.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return []string{strings.ToLower(strings.TrimSpace(text))}, nil
	}

	names := make([]string, 0, len(foods))
	for _, food := range foods {
		names = append(names, food.Food)
	}
	return names, nil
}

// cleanFoodText lowercases a food phrase and strips leading and trailing
// time markers.
func cleanFoodText(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, marker := range timeMarkers {
		text = strings.TrimSuffix(text, " "+marker)
		text = strings.TrimPrefix(text, marker+" ")
	}
	return strings.TrimSpace(text)
}

// dedupeKeepMax collapses duplicate food names, keeping the highest
// quantity and the first-seen order. Bare time markers are dropped.
func dedupeKeepMax(foods []outbound.ExtractedFood) []outbound.ExtractedFood {
	quantities := make(map[string]float64)
	var order []string
	for _, food := range foods {
		if isTimeMarker(food.Food) {
			continue
		}
		if existing, ok := quantities[food.Food]; ok {
			if food.Quantity > existing {
				quantities[food.Food] = food.Quantity
			}
			continue
		}
		quantities[food.Food] = food.Quantity
		order = append(order, food.Food)
	}

	result := make([]outbound.ExtractedFood, 0, len(order))
	for _, name := range order {
		result = append(result, outbound.ExtractedFood{Food: name, Quantity: quantities[name]})
	}
	return result
}

func isTimeMarker(word string) bool {
	for _, marker := range timeMarkers {
		if word == marker {
			return true
		}
	}
	return false
}
