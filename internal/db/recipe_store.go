package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mirepoix/internal/recipes"
	"mirepoix/models"
)

// RecipeStore is the gorm-backed implementation of the recipe engine's
// persistence contract.
type RecipeStore struct {
	db *gorm.DB
}

// NewRecipeStore wraps a gorm handle in the recipes.Store contract.
func NewRecipeStore(database *gorm.DB) *RecipeStore {
	return &RecipeStore{db: database}
}

var _ recipes.Store = (*RecipeStore)(nil)

// ReadRecipeHead returns the head row or (nil, nil) when the id is unknown.
func (s *RecipeStore) ReadRecipeHead(ctx context.Context, id uint) (*models.Recipe, error) {
	var head models.Recipe
	err := s.db.WithContext(ctx).First(&head, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &head, nil
}

// ReadVersion returns one immutable version row or (nil, nil).
func (s *RecipeStore) ReadVersion(ctx context.Context, recipeID uint, version int) (*models.RecipeVersion, error) {
	var row models.RecipeVersion
	err := s.db.WithContext(ctx).
		Where("recipe_id = ? AND version = ?", recipeID, version).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// QueryVersionsForRecipe returns all versions ordered ascending.
func (s *RecipeStore) QueryVersionsForRecipe(ctx context.Context, recipeID uint) ([]models.RecipeVersion, error) {
	var rows []models.RecipeVersion
	err := s.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("version asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// QueryRecipesByParent returns every recipe duplicated from parentID.
func (s *RecipeStore) QueryRecipesByParent(ctx context.Context, parentID uint) ([]models.Recipe, error) {
	var rows []models.Recipe
	err := s.db.WithContext(ctx).
		Where("parent_recipe_id = ?", parentID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListActiveRecipes returns the owner's non-archived heads, newest first.
func (s *RecipeStore) ListActiveRecipes(ctx context.Context, ownerID uint) ([]models.Recipe, error) {
	var rows []models.Recipe
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND archived_at IS NULL", ownerID).
		Order("updated_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WriteAtomic applies the batch inside one transaction. An op carrying both
// a head and a version writes the head first and stamps its generated id
// onto the version row, so a new recipe and its first version commit
// together or not at all.
func (s *RecipeStore) WriteAtomic(ctx context.Context, ops []recipes.WriteOp) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if op.Head != nil {
				if err := tx.Save(op.Head).Error; err != nil {
					return err
				}
			}
			if op.Version != nil {
				if op.Head != nil && op.Version.RecipeID == 0 {
					op.Version.RecipeID = op.Head.ID
				}
				if err := tx.Create(op.Version).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
