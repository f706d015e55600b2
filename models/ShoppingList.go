package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ShoppingList groups the consolidated items generated from one or more
// recipes. Token is the public identifier handed to clients; the numeric
// primary key never leaves the database layer.
type ShoppingList struct {
	gorm.Model
	OwnerID uint           `gorm:"not null;index" json:"owner_id"`
	Token   string         `gorm:"uniqueIndex;not null" json:"token"`
	Name    string         `json:"name"`
	Items   []ShoppingItem `gorm:"foreignKey:ListID" json:"items"`
}

// ShoppingItem is one merged shopping line. RecipeIDs records every recipe
// that contributed quantity to the line.
type ShoppingItem struct {
	gorm.Model
	ListID    uint                      `gorm:"not null;index" json:"list_id"`
	Name      string                    `gorm:"not null" json:"name"`
	Quantity  float64                   `json:"quantity"`
	Unit      string                    `json:"unit"`
	Category  string                    `json:"category"`
	Checked   bool                      `gorm:"not null;default:false" json:"checked"`
	RecipeIDs datatypes.JSONSlice[uint] `json:"recipe_ids"`
}
