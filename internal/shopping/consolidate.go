// Package shopping merges the ingredient lists of one or more recipes into
// consolidated shopping items. Merging is deliberately conservative: two
// lines combine only when their folded name and their unit match exactly.
// Convertible units (cup vs ml) stay separate so consolidation never changes
// a unit the user chose.
package shopping

import (
	"strings"

	"golang.org/x/text/cases"

	"mirepoix/models"
)

var nameFolder = cases.Fold()

type mergeKey struct {
	name string
	unit string
}

// Contribution is one recipe's ingredient list feeding a consolidation.
type Contribution struct {
	RecipeID    uint
	Ingredients []models.Ingredient
}

// Consolidate merges contributions into shopping items. Items appear in
// first-contribution order; quantities sum; recipe ids accumulate in order
// of first appearance; the category comes from the first contributing
// ingredient that has one.
func Consolidate(contributions []Contribution) []models.ShoppingItem {
	var order []mergeKey
	merged := make(map[mergeKey]*models.ShoppingItem)

	for _, contribution := range contributions {
		for _, ingredient := range contribution.Ingredients {
			key := mergeKey{
				name: nameFolder.String(strings.TrimSpace(ingredient.Name)),
				unit: ingredient.Unit,
			}

			item, ok := merged[key]
			if !ok {
				item = &models.ShoppingItem{
					Name:     strings.TrimSpace(ingredient.Name),
					Unit:     ingredient.Unit,
					Category: ingredient.Category,
				}
				merged[key] = item
				order = append(order, key)
			}

			item.Quantity += ingredient.Quantity
			if item.Category == "" {
				item.Category = ingredient.Category
			}
			if !containsID(item.RecipeIDs, contribution.RecipeID) {
				item.RecipeIDs = append(item.RecipeIDs, contribution.RecipeID)
			}
		}
	}

	items := make([]models.ShoppingItem, 0, len(order))
	for _, key := range order {
		item := merged[key]
		item.Category = models.NormalizeCategory(item.Category)
		items = append(items, *item)
	}
	return items
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
