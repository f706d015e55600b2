package recipes

import (
	"context"
	"time"

	applog "mirepoix/internal/log"
	"mirepoix/models"
)

// Service implements the versioned recipe engine over an injected Store.
// It holds no state of its own; every operation is a pure computation plus
// at most one atomic store write.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService builds a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateRecipe validates the input and persists the head together with
// version 1 in one atomic write.
func (s *Service) CreateRecipe(ctx context.Context, ownerID uint, in RecipeInput) (*models.Recipe, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ingredients, instructions := in.materialize()
	head := &models.Recipe{
		OwnerID:        ownerID,
		CurrentVersion: 1,
		Title:          in.Title,
		Description:    in.Description,
		Ingredients:    ingredients,
		Instructions:   instructions,
		PrepMinutes:    in.PrepMinutes,
		CookMinutes:    in.CookMinutes,
		Servings:       in.Servings,
		SourceURL:      in.SourceURL,
		Tags:           in.Tags,
		Rating:         in.Rating,
		FolderID:       in.FolderID,
	}
	version := versionFromHead(head, 1)

	if err := s.store.WriteAtomic(ctx, []WriteOp{{Head: head, Version: version}}); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "recipe created", "recipeID", head.ID, "title", head.Title)
	return normalizeHead(head), nil
}

// UpdateRecipe appends the next version and advances the head. Archived
// recipes stay editable; bringing one back into listings is a separate,
// explicit unarchive.
func (s *Service) UpdateRecipe(ctx context.Context, id uint, in RecipeInput) (*models.Recipe, error) {
	head, err := s.store.ReadRecipeHead(ctx, id)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, ErrNotFound
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ingredients, instructions := in.materialize()
	head.CurrentVersion++
	head.Title = in.Title
	head.Description = in.Description
	head.Ingredients = ingredients
	head.Instructions = instructions
	head.PrepMinutes = in.PrepMinutes
	head.CookMinutes = in.CookMinutes
	head.Servings = in.Servings
	head.SourceURL = in.SourceURL
	head.Tags = in.Tags
	head.Rating = in.Rating
	head.FolderID = in.FolderID
	version := versionFromHead(head, head.CurrentVersion)

	if err := s.store.WriteAtomic(ctx, []WriteOp{{Version: version}, {Head: head}}); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "recipe updated", "recipeID", head.ID, "version", head.CurrentVersion)
	return normalizeHead(head), nil
}

// GetRecipe loads a recipe head. When version is non-nil the returned
// record's content fields are overwritten with that version's snapshot for
// display, while CurrentVersion keeps reporting the latest number. Callers
// track which version they asked for; the field does not. This mirrors
// long-standing client behavior and is deliberate.
func (s *Service) GetRecipe(ctx context.Context, id uint, version *int) (*models.Recipe, error) {
	head, err := s.store.ReadRecipeHead(ctx, id)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, ErrNotFound
	}

	if version != nil {
		if *version < 1 || *version > head.CurrentVersion {
			return nil, &VersionRangeError{Version: *version, Current: head.CurrentVersion}
		}
		snapshot, err := s.store.ReadVersion(ctx, id, *version)
		if err != nil {
			return nil, err
		}
		if snapshot == nil {
			return nil, &IntegrityError{RecipeID: id, Reason: "version missing from a dense history"}
		}
		head.Title = snapshot.Title
		head.Description = snapshot.Description
		head.Ingredients = snapshot.Ingredients
		head.Instructions = snapshot.Instructions
		head.PrepMinutes = snapshot.PrepMinutes
		head.CookMinutes = snapshot.CookMinutes
		head.Servings = snapshot.Servings
		head.SourceURL = snapshot.SourceURL
	}

	return normalizeHead(head), nil
}

// GetVersionHistory returns every version of the recipe ordered ascending.
// The history of an existing recipe is never empty and has no gaps; a
// mismatch against the head is corruption.
func (s *Service) GetVersionHistory(ctx context.Context, id uint) ([]models.RecipeVersion, error) {
	head, err := s.store.ReadRecipeHead(ctx, id)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, ErrNotFound
	}

	versions, err := s.store.QueryVersionsForRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(versions) != head.CurrentVersion {
		return nil, &IntegrityError{RecipeID: id, Reason: "version history does not match head"}
	}
	for i, version := range versions {
		if version.Version != i+1 {
			return nil, &IntegrityError{RecipeID: id, Reason: "version numbers are not dense"}
		}
	}
	return versions, nil
}

// RestoreVersion copies the content of an earlier version into a brand-new
// version. History only grows; nothing is rewound.
func (s *Service) RestoreVersion(ctx context.Context, id uint, target int) (*models.Recipe, error) {
	head, err := s.store.ReadRecipeHead(ctx, id)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, ErrNotFound
	}
	if target < 1 || target > head.CurrentVersion {
		return nil, &VersionRangeError{Version: target, Current: head.CurrentVersion}
	}

	snapshot, err := s.store.ReadVersion(ctx, id, target)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, &IntegrityError{RecipeID: id, Reason: "version missing from a dense history"}
	}

	head.CurrentVersion++
	head.Title = snapshot.Title
	head.Description = snapshot.Description
	head.Ingredients = snapshot.Ingredients
	head.Instructions = snapshot.Instructions
	head.PrepMinutes = snapshot.PrepMinutes
	head.CookMinutes = snapshot.CookMinutes
	head.Servings = snapshot.Servings
	head.SourceURL = snapshot.SourceURL
	version := versionFromHead(head, head.CurrentVersion)

	if err := s.store.WriteAtomic(ctx, []WriteOp{{Version: version}, {Head: head}}); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "recipe version restored", "recipeID", id, "restored", target, "asVersion", head.CurrentVersion)
	return normalizeHead(head), nil
}

// DuplicateRecipe copies the source's current content into an entirely new
// recipe chained to its source through ParentRecipeID.
func (s *Service) DuplicateRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	source, err := s.store.ReadRecipeHead(ctx, id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrNotFound
	}

	parentID := source.ID
	head := &models.Recipe{
		OwnerID:        source.OwnerID,
		CurrentVersion: 1,
		Title:          source.Title + " (Copy)",
		Description:    source.Description,
		Ingredients:    source.Ingredients,
		Instructions:   source.Instructions,
		PrepMinutes:    source.PrepMinutes,
		CookMinutes:    source.CookMinutes,
		Servings:       source.Servings,
		SourceURL:      source.SourceURL,
		Tags:           source.Tags,
		Rating:         source.Rating,
		FolderID:       source.FolderID,
		ParentRecipeID: &parentID,
	}
	version := versionFromHead(head, 1)

	if err := s.store.WriteAtomic(ctx, []WriteOp{{Head: head, Version: version}}); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "recipe duplicated", "sourceID", id, "recipeID", head.ID)
	return normalizeHead(head), nil
}

// ArchiveRecipe soft-deletes a recipe. Archiving an archived recipe is a no-op.
func (s *Service) ArchiveRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.setArchived(ctx, id, true)
}

// UnarchiveRecipe brings a recipe back into listings. Idempotent.
func (s *Service) UnarchiveRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.setArchived(ctx, id, false)
}

func (s *Service) setArchived(ctx context.Context, id uint, archived bool) (*models.Recipe, error) {
	head, err := s.store.ReadRecipeHead(ctx, id)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, ErrNotFound
	}

	if archived == head.Archived() {
		return normalizeHead(head), nil
	}

	if archived {
		at := s.now()
		head.ArchivedAt = &at
	} else {
		head.ArchivedAt = nil
	}

	if err := s.store.WriteAtomic(ctx, []WriteOp{{Head: head}}); err != nil {
		return nil, err
	}
	return normalizeHead(head), nil
}

// ListRecipes returns the owner's non-archived recipes.
func (s *Service) ListRecipes(ctx context.Context, ownerID uint) ([]models.Recipe, error) {
	heads, err := s.store.ListActiveRecipes(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range heads {
		normalizeHead(&heads[i])
	}
	return heads, nil
}

func versionFromHead(head *models.Recipe, number int) *models.RecipeVersion {
	return &models.RecipeVersion{
		RecipeID:     head.ID,
		Version:      number,
		Title:        head.Title,
		Description:  head.Description,
		Ingredients:  head.Ingredients,
		Instructions: head.Instructions,
		PrepMinutes:  head.PrepMinutes,
		CookMinutes:  head.CookMinutes,
		Servings:     head.Servings,
		SourceURL:    head.SourceURL,
	}
}

// normalizeHead applies read-time normalization: an absent ingredient
// category reads as "other". Stored rows are never rewritten.
func normalizeHead(head *models.Recipe) *models.Recipe {
	for i := range head.Ingredients {
		head.Ingredients[i].Category = models.NormalizeCategory(head.Ingredients[i].Category)
	}
	return head
}
