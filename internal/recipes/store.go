package recipes

import (
	"context"

	"mirepoix/models"
)

// WriteOp is one head upsert and/or version insert inside an atomic batch.
// When both fields are set on a single op the version row adopts the head's
// generated identifier after the head write, which lets a brand-new recipe
// and its first version land together.
type WriteOp struct {
	Head    *models.Recipe
	Version *models.RecipeVersion
}

// Store is the record-persistence contract the engine depends on. Reads
// return (nil, nil) when the record does not exist; WriteAtomic applies the
// whole batch or none of it.
type Store interface {
	ReadRecipeHead(ctx context.Context, id uint) (*models.Recipe, error)
	ReadVersion(ctx context.Context, recipeID uint, version int) (*models.RecipeVersion, error)
	QueryVersionsForRecipe(ctx context.Context, recipeID uint) ([]models.RecipeVersion, error)
	QueryRecipesByParent(ctx context.Context, parentID uint) ([]models.Recipe, error)
	ListActiveRecipes(ctx context.Context, ownerID uint) ([]models.Recipe, error)
	WriteAtomic(ctx context.Context, ops []WriteOp) error
}
