package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appdb "mirepoix/internal/db"
	applog "mirepoix/internal/log"
	"mirepoix/internal/recipes"
	"mirepoix/internal/shopping"
	"mirepoix/models"
)

// New returns an in-memory sqlite database seeded with representative
// kitchen data: one account, a few recipes with edit history, a duplicate
// with lineage, and a generated shopping list.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:mirepoix-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.RecipeVersion{},
		&models.ShoppingList{},
		&models.ShoppingItem{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte("mise en place"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "Rowan Tester",
		Email:        "rowan@mirepoix.app",
		PasswordHash: string(password),
		UnitSystem:   "us",
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	// Seed through the engine so heads and version rows stay consistent.
	engine := recipes.NewService(appdb.NewRecipeStore(db))

	pancakes, err := engine.CreateRecipe(ctx, user.ID, recipes.RecipeInput{
		Title:       "Buttermilk Pancakes",
		Description: "Weekend griddle staple with a tender crumb.",
		Ingredients: []recipes.IngredientInput{
			{Name: "flour", Quantity: 2, Unit: "cup", Category: models.CategoryPantry},
			{Name: "buttermilk", Quantity: 1.75, Unit: "cup", Category: models.CategoryDairy},
			{Name: "eggs", Quantity: 2, Unit: "piece", Category: models.CategoryDairy},
			{Name: "salt", Quantity: 1, Unit: "pinch"},
		},
		Instructions: []recipes.InstructionInput{
			{Step: 1, Text: "Whisk the dry ingredients together."},
			{Step: 2, Text: "Fold in buttermilk and eggs until just combined."},
			{Step: 3, Text: "Griddle over medium heat until bubbles set.", DurationMinutes: 12},
		},
		PrepMinutes: 10,
		CookMinutes: 15,
		Servings:    4,
		Tags:        []string{"breakfast", "griddle"},
	})
	if err != nil {
		return err
	}

	// A second edit gives the pancakes a version history to browse.
	if _, err := engine.UpdateRecipe(ctx, pancakes.ID, recipes.RecipeInput{
		Title:       "Buttermilk Pancakes",
		Description: "Weekend griddle staple, now with browned butter.",
		Ingredients: []recipes.IngredientInput{
			{Name: "flour", Quantity: 2, Unit: "cup", Category: models.CategoryPantry},
			{Name: "buttermilk", Quantity: 1.75, Unit: "cup", Category: models.CategoryDairy},
			{Name: "eggs", Quantity: 2, Unit: "piece", Category: models.CategoryDairy},
			{Name: "browned butter", Quantity: 3, Unit: "tbsp", Category: models.CategoryDairy},
			{Name: "salt", Quantity: 1, Unit: "pinch"},
		},
		Instructions: []recipes.InstructionInput{
			{Step: 1, Text: "Brown the butter and let it cool slightly."},
			{Step: 2, Text: "Whisk the dry ingredients together."},
			{Step: 3, Text: "Fold in buttermilk, eggs, and butter until just combined."},
			{Step: 4, Text: "Griddle over medium heat until bubbles set.", DurationMinutes: 12},
		},
		PrepMinutes: 15,
		CookMinutes: 15,
		Servings:    4,
		Tags:        []string{"breakfast", "griddle"},
	}); err != nil {
		return err
	}

	soup, err := engine.CreateRecipe(ctx, user.ID, recipes.RecipeInput{
		Title:       "Roasted Tomato Soup",
		Description: "Deep-roasted tomatoes with a metric-friendly broth.",
		Ingredients: []recipes.IngredientInput{
			{Name: "tomatoes", Quantity: 1.2, Unit: "kg", Category: models.CategoryProduce},
			{Name: "vegetable stock", Quantity: 750, Unit: "ml", Category: models.CategoryPantry},
			{Name: "flour", Quantity: 0.25, Unit: "cup", Category: models.CategoryPantry},
			{Name: "basil", Quantity: 1, Unit: "to_taste", Category: models.CategoryProduce},
		},
		Instructions: []recipes.InstructionInput{
			{Step: 1, Text: "Roast the tomatoes until blistered.", DurationMinutes: 35},
			{Step: 2, Text: "Blend with stock and simmer."},
		},
		PrepMinutes: 10,
		CookMinutes: 50,
		Servings:    6,
		Tags:        []string{"soup", "vegetarian"},
	})
	if err != nil {
		return err
	}

	// Lineage: a tweaked copy of the soup.
	if _, err := engine.DuplicateRecipe(ctx, soup.ID); err != nil {
		return err
	}

	lists := shopping.NewService(engine, appdb.NewShoppingStore(db))
	if _, err := lists.GenerateFromRecipes(ctx, user.ID, "Weekend shop", []uint{pancakes.ID, soup.ID}); err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
