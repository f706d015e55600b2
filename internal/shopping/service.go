package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"

	applog "mirepoix/internal/log"
	"mirepoix/internal/recipes"
	"mirepoix/models"
)

// ErrNoRecipes is returned when none of the submitted recipe ids resolve to
// a usable recipe. Partial resolution is not an error.
var ErrNoRecipes = errors.New("shopping: no resolvable recipes")

// ErrListNotFound is returned when a token does not resolve to one of the
// owner's lists.
var ErrListNotFound = errors.New("shopping: list not found")

// ErrItemNotFound is returned when a toggle targets an item the list does not hold.
var ErrItemNotFound = errors.New("shopping: item not found in list")

// RecipeResolver is the slice of the recipe engine the consolidator needs.
type RecipeResolver interface {
	GetRecipe(ctx context.Context, id uint, version *int) (*models.Recipe, error)
}

// Store persists shopping lists and their items. ReadListByToken returns
// (nil, nil) when no list matches.
type Store interface {
	CreateList(ctx context.Context, list *models.ShoppingList) error
	ReadListByToken(ctx context.Context, ownerID uint, token string) (*models.ShoppingList, error)
	SaveItem(ctx context.Context, item *models.ShoppingItem) error
}

// Service generates and serves consolidated shopping lists.
type Service struct {
	resolver RecipeResolver
	store    Store
}

// NewService builds a Service over the recipe engine and a list store.
func NewService(resolver RecipeResolver, store Store) *Service {
	return &Service{resolver: resolver, store: store}
}

// GenerateFromRecipes resolves each recipe's current ingredients and merges
// them into a persisted list. Missing, archived, and foreign-owned recipes
// are skipped silently; only a fully unresolvable input fails. Integrity
// failures from the recipe engine are never swallowed.
func (s *Service) GenerateFromRecipes(ctx context.Context, ownerID uint, name string, recipeIDs []uint) (*models.ShoppingList, error) {
	var contributions []Contribution
	for _, id := range recipeIDs {
		recipe, err := s.resolver.GetRecipe(ctx, id, nil)
		if err != nil {
			if errors.Is(err, recipes.ErrNotFound) {
				applog.Debug(ctx, "skipping unresolvable recipe", "recipeID", id)
				continue
			}
			return nil, err
		}
		if recipe.OwnerID != ownerID {
			applog.Debug(ctx, "skipping foreign recipe", "recipeID", id)
			continue
		}
		if recipe.Archived() {
			applog.Debug(ctx, "skipping archived recipe", "recipeID", id)
			continue
		}
		contributions = append(contributions, Contribution{
			RecipeID:    recipe.ID,
			Ingredients: recipe.Ingredients,
		})
	}

	if len(contributions) == 0 {
		return nil, ErrNoRecipes
	}

	list := &models.ShoppingList{
		OwnerID: ownerID,
		Token:   uuid.NewString(),
		Name:    name,
		Items:   Consolidate(contributions),
	}
	if err := s.store.CreateList(ctx, list); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "shopping list generated",
		"token", list.Token,
		"recipes", len(contributions),
		"items", len(list.Items),
	)
	return list, nil
}

// GetList loads a list with its items by public token.
func (s *Service) GetList(ctx context.Context, ownerID uint, token string) (*models.ShoppingList, error) {
	list, err := s.store.ReadListByToken(ctx, ownerID, token)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrListNotFound
	}
	return list, nil
}

// GetItemsByCategory partitions a list's items by category. Every item
// lands in exactly one partition; empty partitions are absent from the map.
func (s *Service) GetItemsByCategory(ctx context.Context, ownerID uint, token string) (map[string][]models.ShoppingItem, error) {
	list, err := s.GetList(ctx, ownerID, token)
	if err != nil {
		return nil, err
	}

	partitions := make(map[string][]models.ShoppingItem)
	for _, item := range list.Items {
		category := models.NormalizeCategory(item.Category)
		partitions[category] = append(partitions[category], item)
	}
	return partitions, nil
}

// ToggleItem sets an item's checked state.
func (s *Service) ToggleItem(ctx context.Context, ownerID uint, token string, itemID uint, checked bool) (*models.ShoppingItem, error) {
	list, err := s.GetList(ctx, ownerID, token)
	if err != nil {
		return nil, err
	}

	for i := range list.Items {
		if list.Items[i].ID == itemID {
			list.Items[i].Checked = checked
			if err := s.store.SaveItem(ctx, &list.Items[i]); err != nil {
				return nil, err
			}
			return &list.Items[i], nil
		}
	}
	return nil, ErrItemNotFound
}
