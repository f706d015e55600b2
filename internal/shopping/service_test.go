package shopping_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appdb "mirepoix/internal/db"
	"mirepoix/internal/recipes"
	"mirepoix/internal/shopping"
	"mirepoix/models"
)

var testDatabaseSequence atomic.Int64

func newTestServices(t *testing.T) (*shopping.Service, *recipes.Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:shopping_engine_%d?mode=memory&cache=shared", testDatabaseSequence.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Recipe{}, &models.RecipeVersion{},
		&models.ShoppingList{}, &models.ShoppingItem{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	recipeService := recipes.NewService(appdb.NewRecipeStore(db))
	return shopping.NewService(recipeService, appdb.NewShoppingStore(db)), recipeService
}

func mustCreate(t *testing.T, service *recipes.Service, ownerID uint, title string, ingredients ...recipes.IngredientInput) *models.Recipe {
	t.Helper()
	recipe, err := service.CreateRecipe(context.Background(), ownerID, recipes.RecipeInput{
		Title:        title,
		Ingredients:  ingredients,
		Instructions: []recipes.InstructionInput{{Step: 1, Text: "Cook."}},
		Servings:     2,
	})
	if err != nil {
		t.Fatalf("failed to create recipe %q: %v", title, err)
	}
	return recipe
}

func TestGenerateFromRecipesMergesAndPersists(t *testing.T) {
	t.Parallel()
	shoppingService, recipeService := newTestServices(t)
	ctx := context.Background()

	pancakes := mustCreate(t, recipeService, 1, "Pancakes",
		recipes.IngredientInput{Name: "flour", Quantity: 2, Unit: "cup", Category: models.CategoryPantry},
		recipes.IngredientInput{Name: "milk", Quantity: 1, Unit: "cup", Category: models.CategoryDairy},
	)
	muffins := mustCreate(t, recipeService, 1, "Muffins",
		recipes.IngredientInput{Name: "flour", Quantity: 1.5, Unit: "cup"},
		recipes.IngredientInput{Name: "milk", Quantity: 250, Unit: "ml", Category: models.CategoryDairy},
	)

	list, err := shoppingService.GenerateFromRecipes(ctx, 1, "Weekend Baking", []uint{pancakes.ID, muffins.ID})
	if err != nil {
		t.Fatalf("GenerateFromRecipes returned error: %v", err)
	}
	if list.Token == "" {
		t.Fatal("expected a share token")
	}
	if len(list.Items) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(list.Items), list.Items)
	}

	byName := make(map[string]models.ShoppingItem)
	for _, item := range list.Items {
		byName[item.Name+"/"+item.Unit] = item
	}
	flour := byName["flour/cup"]
	if flour.Quantity != 3.5 {
		t.Fatalf("flour quantity = %v, want 3.5", flour.Quantity)
	}
	if len(flour.RecipeIDs) != 2 {
		t.Fatalf("flour recipe ids = %v, want both recipes", flour.RecipeIDs)
	}
	if _, ok := byName["milk/cup"]; !ok {
		t.Fatal("milk in cups missing; convertible units must not merge")
	}
	if _, ok := byName["milk/ml"]; !ok {
		t.Fatal("milk in ml missing; convertible units must not merge")
	}

	// Round-trip through the store by token.
	loaded, err := shoppingService.GetList(ctx, 1, list.Token)
	if err != nil {
		t.Fatalf("GetList returned error: %v", err)
	}
	if len(loaded.Items) != 3 {
		t.Fatalf("loaded %d items, want 3", len(loaded.Items))
	}
}

func TestGenerateSkipsMissingAndArchivedRecipes(t *testing.T) {
	t.Parallel()
	shoppingService, recipeService := newTestServices(t)
	ctx := context.Background()

	kept := mustCreate(t, recipeService, 1, "Kept",
		recipes.IngredientInput{Name: "rice", Quantity: 1, Unit: "cup"},
	)
	retired := mustCreate(t, recipeService, 1, "Retired",
		recipes.IngredientInput{Name: "beans", Quantity: 1, Unit: "cup"},
	)
	if _, err := recipeService.ArchiveRecipe(ctx, retired.ID); err != nil {
		t.Fatalf("ArchiveRecipe returned error: %v", err)
	}

	list, err := shoppingService.GenerateFromRecipes(ctx, 1, "Partial", []uint{kept.ID, retired.ID, 9999})
	if err != nil {
		t.Fatalf("GenerateFromRecipes returned error: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Name != "rice" {
		t.Fatalf("items = %+v, want just rice", list.Items)
	}
}

func TestGenerateSkipsForeignOwnedRecipes(t *testing.T) {
	t.Parallel()
	shoppingService, recipeService := newTestServices(t)
	ctx := context.Background()

	private := mustCreate(t, recipeService, 1, "House Blend",
		recipes.IngredientInput{Name: "secret spice", Quantity: 2, Unit: "tbsp"},
	)
	own := mustCreate(t, recipeService, 2, "Weeknight Curry",
		recipes.IngredientInput{Name: "lentils", Quantity: 1, Unit: "cup"},
	)

	list, err := shoppingService.GenerateFromRecipes(ctx, 2, "Groceries", []uint{private.ID, own.ID})
	if err != nil {
		t.Fatalf("GenerateFromRecipes returned error: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Name != "lentils" {
		t.Fatalf("items = %+v, want just lentils", list.Items)
	}

	if _, err := shoppingService.GenerateFromRecipes(ctx, 2, "Groceries", []uint{private.ID}); !errors.Is(err, shopping.ErrNoRecipes) {
		t.Fatalf("all-foreign input err = %v, want ErrNoRecipes", err)
	}
}

func TestGenerateFailsWhenNothingResolves(t *testing.T) {
	t.Parallel()
	shoppingService, recipeService := newTestServices(t)
	ctx := context.Background()

	retired := mustCreate(t, recipeService, 1, "Retired",
		recipes.IngredientInput{Name: "beans", Quantity: 1, Unit: "cup"},
	)
	if _, err := recipeService.ArchiveRecipe(ctx, retired.ID); err != nil {
		t.Fatalf("ArchiveRecipe returned error: %v", err)
	}

	for _, ids := range [][]uint{nil, {9999}, {retired.ID}, {retired.ID, 9999}} {
		_, err := shoppingService.GenerateFromRecipes(ctx, 1, "Empty", ids)
		if !errors.Is(err, shopping.ErrNoRecipes) {
			t.Fatalf("ids %v: err = %v, want ErrNoRecipes", ids, err)
		}
	}
}

func TestGetListScopedToOwner(t *testing.T) {
	t.Parallel()
	shoppingService, recipeService := newTestServices(t)
	ctx := context.Background()

	recipe := mustCreate(t, recipeService, 1, "Soup",
		recipes.IngredientInput{Name: "stock", Quantity: 1, Unit: "l"},
	)
	list, err := shoppingService.GenerateFromRecipes(ctx, 1, "Soup Night", []uint{recipe.ID})
	if err != nil {
		t.Fatalf("GenerateFromRecipes returned error: %v", err)
	}

	if _, err := shoppingService.GetList(ctx, 2, list.Token); !errors.Is(err, shopping.ErrListNotFound) {
		t.Fatalf("foreign owner err = %v, want ErrListNotFound", err)
	}
	if _, err := shoppingService.GetList(ctx, 1, "no-such-token"); !errors.Is(err, shopping.ErrListNotFound) {
		t.Fatalf("bad token err = %v, want ErrListNotFound", err)
	}
}

func TestGetItemsByCategoryPartitionsEveryItemOnce(t *testing.T) {
	t.Parallel()
	shoppingService, recipeService := newTestServices(t)
	ctx := context.Background()

	recipe := mustCreate(t, recipeService, 1, "Dinner",
		recipes.IngredientInput{Name: "chicken", Quantity: 1, Unit: "lb", Category: models.CategoryMeat},
		recipes.IngredientInput{Name: "lettuce", Quantity: 1, Unit: "piece", Category: models.CategoryProduce},
		recipes.IngredientInput{Name: "croutons", Quantity: 1, Unit: "cup"},
	)
	list, err := shoppingService.GenerateFromRecipes(ctx, 1, "Dinner", []uint{recipe.ID})
	if err != nil {
		t.Fatalf("GenerateFromRecipes returned error: %v", err)
	}

	partitions, err := shoppingService.GetItemsByCategory(ctx, 1, list.Token)
	if err != nil {
		t.Fatalf("GetItemsByCategory returned error: %v", err)
	}

	total := 0
	for category, items := range partitions {
		if !models.ValidCategory(category) {
			t.Fatalf("unexpected partition key %q", category)
		}
		if len(items) == 0 {
			t.Fatalf("empty partition %q should be absent", category)
		}
		total += len(items)
	}
	if total != len(list.Items) {
		t.Fatalf("partitioned %d items, list has %d", total, len(list.Items))
	}
	if len(partitions[models.CategoryMeat]) != 1 {
		t.Fatalf("meat partition = %+v", partitions[models.CategoryMeat])
	}
	if len(partitions[models.CategoryOther]) != 1 {
		t.Fatalf("uncategorized item should land in %q: %+v", models.CategoryOther, partitions)
	}
}

func TestToggleItem(t *testing.T) {
	t.Parallel()
	shoppingService, recipeService := newTestServices(t)
	ctx := context.Background()

	recipe := mustCreate(t, recipeService, 1, "Snacks",
		recipes.IngredientInput{Name: "apples", Quantity: 4, Unit: "piece", Category: models.CategoryProduce},
	)
	list, err := shoppingService.GenerateFromRecipes(ctx, 1, "Snacks", []uint{recipe.ID})
	if err != nil {
		t.Fatalf("GenerateFromRecipes returned error: %v", err)
	}
	itemID := list.Items[0].ID

	toggled, err := shoppingService.ToggleItem(ctx, 1, list.Token, itemID, true)
	if err != nil {
		t.Fatalf("ToggleItem returned error: %v", err)
	}
	if !toggled.Checked {
		t.Fatal("expected item to be checked")
	}

	reloaded, err := shoppingService.GetList(ctx, 1, list.Token)
	if err != nil {
		t.Fatalf("GetList returned error: %v", err)
	}
	if !reloaded.Items[0].Checked {
		t.Fatal("checked state did not persist")
	}

	toggled, err = shoppingService.ToggleItem(ctx, 1, list.Token, itemID, false)
	if err != nil {
		t.Fatalf("ToggleItem returned error: %v", err)
	}
	if toggled.Checked {
		t.Fatal("expected item to be unchecked")
	}

	if _, err := shoppingService.ToggleItem(ctx, 1, list.Token, 424242, true); !errors.Is(err, shopping.ErrItemNotFound) {
		t.Fatalf("err = %v, want ErrItemNotFound", err)
	}
}
