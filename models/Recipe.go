package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recipe is the mutable head record for a versioned recipe. Its content
// fields mirror the RecipeVersion identified by CurrentVersion so listings
// never need a join against the version log.
type Recipe struct {
	gorm.Model
	OwnerID        uint                             `gorm:"not null;index" json:"owner_id"`
	Owner          *User                            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CurrentVersion int                              `gorm:"not null;default:1" json:"current_version"`
	Title          string                           `gorm:"not null" json:"title"`
	Description    string                           `gorm:"type:text" json:"description"`
	Ingredients    datatypes.JSONSlice[Ingredient]  `json:"ingredients"`
	Instructions   datatypes.JSONSlice[Instruction] `json:"instructions"`
	PrepMinutes    int                              `json:"prep_minutes"`
	CookMinutes    int                              `json:"cook_minutes"`
	Servings       int                              `gorm:"not null;default:1" json:"servings"`
	SourceURL      string                           `json:"source_url,omitempty"`
	Tags           datatypes.JSONSlice[string]      `json:"tags"`
	Rating         *int                             `json:"rating,omitempty"`
	FolderID       *uint                            `json:"folder_id,omitempty"`
	ParentRecipeID *uint                            `gorm:"index" json:"parent_recipe_id,omitempty"`
	ParentRecipe   *Recipe                          `gorm:"foreignKey:ParentRecipeID" json:"parent_recipe,omitempty"`
	ArchivedAt     *time.Time                       `json:"archived_at,omitempty"`
	Versions       []RecipeVersion                  `gorm:"foreignKey:RecipeID" json:"versions,omitempty"`
}

// Archived reports whether the recipe has been soft-deleted.
func (r *Recipe) Archived() bool {
	return r.ArchivedAt != nil
}
