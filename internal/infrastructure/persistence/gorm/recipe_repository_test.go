package gorm

import (
	"context"
	"encoding/json"
	"testing"

	apperrors "github.com/platewise/platewise/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&RecipeModel{}))
	return db
}

func insertRecipe(t *testing.T, db *gorm.DB, title string, ingredients interface{}) {
	t.Helper()
	data, err := json.Marshal(ingredients)
	require.NoError(t, err)
	model := RecipeModel{Title: title, Ingredients: JSONField(data)}
	require.NoError(t, db.Create(&model).Error)
}

func TestFindByTitleSubstringMatch(t *testing.T) {
	db := setupTestDB(t)
	insertRecipe(t, db, "Classic Mac and Cheese", []string{"200g macaroni", "100g cheddar"})
	repo := NewRecipeRepository(db)

	recipe, err := repo.FindByTitle(context.Background(), "mac and cheese")
	require.NoError(t, err)
	assert.Equal(t, "classic mac and cheese", recipe.Title)
	assert.Equal(t, []string{"200g macaroni", "100g cheddar"}, recipe.Ingredients)
}

func TestFindByTitleObjectIngredients(t *testing.T) {
	db := setupTestDB(t)
	insertRecipe(t, db, "Chicken Curry", []interface{}{
		map[string]string{"text": "300g chicken"},
		"1 cup rice",
		map[string]int{"unrelated": 1},
	})
	repo := NewRecipeRepository(db)

	recipe, err := repo.FindByTitle(context.Background(), "chicken curry")
	require.NoError(t, err)
	// object entries contribute their text field, malformed ones are skipped
	assert.Equal(t, []string{"300g chicken", "1 cup rice"}, recipe.Ingredients)
}

func TestFindByTitleMiss(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)

	_, err := repo.FindByTitle(context.Background(), "phantom dish")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeRecipeNotFound))
}

func TestParseIngredientsEmpty(t *testing.T) {
	assert.Empty(t, parseIngredients(nil))
	assert.Empty(t, parseIngredients(JSONField(`[]`)))
	assert.Empty(t, parseIngredients(JSONField(`"not an array"`)))
}
