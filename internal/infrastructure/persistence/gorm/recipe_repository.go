package gorm

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/platewise/platewise/pkg/errors"
	"github.com/platewise/platewise/internal/ports/outbound"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

// RecipeRepository implements the recipe store interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeStore {
	return &RecipeRepository{db: db}
}

// FindByTitle finds the first recipe whose title contains the given name,
// case-insensitively. A miss is reported as a RecipeNotFound error so
// callers can tell it apart from infrastructure failures.
func (r *RecipeRepository) FindByTitle(ctx context.Context, name string) (*outbound.StoredRecipe, error) {
	var model RecipeModel

	pattern := "%" + strings.ToLower(strings.TrimSpace(name)) + "%"
	result := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", pattern).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(name)
		}
		return nil, apperrors.NewDatabaseError("recipe lookup", result.Error)
	}

	return &outbound.StoredRecipe{
		ID:          model.ID.String(),
		Title:       strings.ToLower(model.Title),
		Ingredients: parseIngredients(model.Ingredients),
	}, nil
}

// parseIngredients flattens a stored ingredient array. Entries are either
// plain strings or objects with a "text" field; anything else is skipped.
func parseIngredients(raw JSONField) []string {
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsArray() {
		return nil
	}
	var ingredients []string
	for _, item := range parsed.Array() {
		var text string
		switch {
		case item.Type == gjson.String:
			text = item.String()
		case item.IsObject():
			text = item.Get("text").String()
		}
		if text = strings.TrimSpace(text); text != "" {
			ingredients = append(ingredients, text)
		}
	}
	return ingredients
}
