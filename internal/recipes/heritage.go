package recipes

import (
	"context"

	"mirepoix/models"
)

// Heritage is the derived duplication lineage of one recipe. Ancestors are
// ordered nearest-first; Parent is a convenience alias for the first
// ancestor. An original recipe has no parent and an empty ancestor list.
type Heritage struct {
	Recipe    *models.Recipe  `json:"recipe"`
	Parent    *models.Recipe  `json:"parent,omitempty"`
	Ancestors []models.Recipe `json:"ancestors"`
	Children  []models.Recipe `json:"children"`
}

// GetRecipeHeritage computes ancestors by walking parent pointers and
// children by a reverse lookup. The walk is guarded: revisiting an id means
// the parent chain has a cycle, which is store corruption, not a stop
// condition.
func (s *Service) GetRecipeHeritage(ctx context.Context, id uint) (*Heritage, error) {
	head, err := s.store.ReadRecipeHead(ctx, id)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, ErrNotFound
	}

	visited := map[uint]bool{head.ID: true}
	var ancestors []models.Recipe
	current := head
	for current.ParentRecipeID != nil {
		parentID := *current.ParentRecipeID
		if visited[parentID] {
			return nil, &IntegrityError{RecipeID: id, Reason: "cycle in parent chain"}
		}
		visited[parentID] = true

		parent, err := s.store.ReadRecipeHead(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, &IntegrityError{RecipeID: id, Reason: "parent chain points at a missing recipe"}
		}
		ancestors = append(ancestors, *normalizeHead(parent))
		current = parent
	}

	children, err := s.store.QueryRecipesByParent(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range children {
		normalizeHead(&children[i])
	}

	heritage := &Heritage{
		Recipe:    normalizeHead(head),
		Ancestors: ancestors,
		Children:  children,
	}
	if len(ancestors) > 0 {
		heritage.Parent = &ancestors[0]
	}
	return heritage, nil
}
