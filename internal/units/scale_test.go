package units

import (
	"errors"
	"testing"

	"mirepoix/models"
)

func TestScaleIngredient(t *testing.T) {
	t.Parallel()

	ingredient := models.Ingredient{Name: "flour", Quantity: 2.5, Unit: "cup"}

	scaled, err := ScaleIngredient(ingredient, 3)
	if err != nil {
		t.Fatalf("ScaleIngredient returned error: %v", err)
	}
	if scaled.Quantity != 7.5 {
		t.Fatalf("scaled quantity = %v, want 7.5", scaled.Quantity)
	}
	if scaled.Unit != "cup" || scaled.Name != "flour" {
		t.Fatalf("scaling altered unit or name: %+v", scaled)
	}
	if ingredient.Quantity != 2.5 {
		t.Fatal("scaling mutated the input ingredient")
	}
}

func TestScaleIngredientRejectsNonPositiveFactor(t *testing.T) {
	t.Parallel()

	for _, factor := range []float64{0, -1} {
		if _, err := ScaleIngredient(models.Ingredient{Quantity: 1}, factor); !errors.Is(err, ErrNonPositiveFactor) {
			t.Fatalf("factor %v: err = %v, want ErrNonPositiveFactor", factor, err)
		}
	}
}

func TestScaleRecipe(t *testing.T) {
	t.Parallel()

	recipe := models.Recipe{
		Title:       "Soup",
		PrepMinutes: 10,
		CookMinutes: 45,
		Servings:    4,
		Ingredients: []models.Ingredient{
			{Name: "stock", Quantity: 4, Unit: "cup"},
			{Name: "salt", Quantity: 1, Unit: "pinch"},
		},
	}

	scaled, err := ScaleRecipe(recipe, 0.5)
	if err != nil {
		t.Fatalf("ScaleRecipe returned error: %v", err)
	}

	if scaled.Servings != 2 {
		t.Fatalf("servings = %d, want 2", scaled.Servings)
	}
	if scaled.Ingredients[0].Quantity != 2 || scaled.Ingredients[1].Quantity != 0.5 {
		t.Fatalf("unexpected scaled quantities: %+v", scaled.Ingredients)
	}
	if scaled.Title != "Soup" || scaled.PrepMinutes != 10 || scaled.CookMinutes != 45 {
		t.Fatalf("scaling touched non-quantity fields: %+v", scaled)
	}
	if recipe.Ingredients[0].Quantity != 4 {
		t.Fatal("scaling mutated the input recipe")
	}

	tiny, err := ScaleRecipe(recipe, 0.1)
	if err != nil {
		t.Fatalf("ScaleRecipe returned error: %v", err)
	}
	if tiny.Servings != 1 {
		t.Fatalf("servings floor = %d, want 1", tiny.Servings)
	}

	if _, err := ScaleRecipe(recipe, -2); !errors.Is(err, ErrNonPositiveFactor) {
		t.Fatalf("err = %v, want ErrNonPositiveFactor", err)
	}
}
