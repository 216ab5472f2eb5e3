// Package gorm provides GORM model definitions and repository
// implementations for the recipe store.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModel represents the GORM model for stored recipes. Ingredients
// and instructions are JSON arrays; ingredient entries may be plain
// strings or objects with a "text" field, both forms appear in imported
// datasets.
type RecipeModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title        string    `gorm:"type:varchar(255);not null;index"`
	Ingredients  JSONField `gorm:"type:json"`
	Instructions JSONField `gorm:"type:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// JSONField is a generic JSON field that can store any JSON structure
type JSONField json.RawMessage

// Scan implements sql.Scanner for JSONField
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = JSONField{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = JSONField(v)
	case string:
		*j = JSONField(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONField", value)
	}
	return nil
}

// Value implements driver.Valuer for JSONField
func (j JSONField) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (RecipeModel) TableName() string {
	return "recipes"
}
