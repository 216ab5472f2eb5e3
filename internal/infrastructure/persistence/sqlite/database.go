// Package sqlite provides SQLite database setup and seeding.
package sqlite

import (
	"encoding/json"
	"fmt"

	gormModels "github.com/platewise/platewise/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&gormModels.RecipeModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// seedRecipe mirrors the imported dataset shape: ingredient entries may be
// plain strings or objects with a "text" field.
type seedRecipe struct {
	title        string
	ingredients  []interface{}
	instructions []string
}

// SeedDatabase populates the recipe table with a starter set of common
// dishes when it is empty.
func SeedDatabase(db *gorm.DB) error {
	var count int64
	db.Model(&gormModels.RecipeModel{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	seeds := []seedRecipe{
		{
			title: "Mac and Cheese",
			ingredients: []interface{}{
				"200g elbow macaroni",
				"100g cheddar cheese",
				"1 cup milk",
				"2 tbsp butter",
				"2 tbsp flour",
			},
			instructions: []string{
				"Cook macaroni until al dente.",
				"Melt butter, whisk in flour, then milk.",
				"Stir in cheese and combine with pasta.",
			},
		},
		{
			title: "Chicken Curry",
			ingredients: []interface{}{
				map[string]string{"text": "300g chicken breast"},
				map[string]string{"text": "1 onion"},
				map[string]string{"text": "2 tbsp curry powder"},
				map[string]string{"text": "200ml coconut milk"},
				map[string]string{"text": "1 cup rice"},
			},
			instructions: []string{
				"Brown the chicken with onion.",
				"Add curry powder and coconut milk, simmer.",
				"Serve over rice.",
			},
		},
		{
			title: "Vegetable Soup",
			ingredients: []interface{}{
				"2 carrots",
				"1 onion",
				"2 celery stalks",
				"1 potato",
				"4 cups vegetable broth",
			},
			instructions: []string{
				"Chop all vegetables.",
				"Simmer in broth until tender.",
			},
		},
		{
			title: "Caesar Salad",
			ingredients: []interface{}{
				"1 romaine lettuce",
				"50g parmesan cheese",
				"1 cup croutons",
				"3 tbsp caesar dressing",
			},
			instructions: []string{
				"Chop lettuce and toss with dressing.",
				"Top with parmesan and croutons.",
			},
		},
	}

	for _, seed := range seeds {
		ingredientsJSON, err := json.Marshal(seed.ingredients)
		if err != nil {
			return fmt.Errorf("failed to marshal seed ingredients: %w", err)
		}
		instructionsJSON, err := json.Marshal(seed.instructions)
		if err != nil {
			return fmt.Errorf("failed to marshal seed instructions: %w", err)
		}

		model := gormModels.RecipeModel{
			Title:        seed.title,
			Ingredients:  gormModels.JSONField(ingredientsJSON),
			Instructions: gormModels.JSONField(instructionsJSON),
		}
		if err := db.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", seed.title, err)
		}
	}

	return nil
}
