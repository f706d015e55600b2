package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Ingredient is one line of a recipe. It is stored inline on the version
// row as JSON so a version snapshot stays a single immutable record.
type Ingredient struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes,omitempty"`
	Category string  `json:"category,omitempty"`
}

// Instruction is one preparation step. Step numbers are 1-indexed and
// unique within a version.
type Instruction struct {
	ID              string `json:"id"`
	Step            int    `json:"step"`
	Text            string `json:"text"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// RecipeVersion is an immutable snapshot of a recipe's content. Rows are
// only ever inserted; edits to a recipe append the next version number.
type RecipeVersion struct {
	gorm.Model
	RecipeID     uint                             `gorm:"not null;uniqueIndex:idx_recipe_versions_recipe_version" json:"recipe_id"`
	Version      int                              `gorm:"not null;uniqueIndex:idx_recipe_versions_recipe_version" json:"version"`
	Title        string                           `gorm:"not null" json:"title"`
	Description  string                           `gorm:"type:text" json:"description"`
	Ingredients  datatypes.JSONSlice[Ingredient]  `json:"ingredients"`
	Instructions datatypes.JSONSlice[Instruction] `json:"instructions"`
	PrepMinutes  int                              `json:"prep_minutes"`
	CookMinutes  int                              `json:"cook_minutes"`
	Servings     int                              `gorm:"not null;default:1" json:"servings"`
	SourceURL    string                           `json:"source_url,omitempty"`
}
