package units

import (
	"errors"
	"math"

	"mirepoix/models"
)

// ErrNonPositiveFactor rejects scale factors that are zero or negative.
var ErrNonPositiveFactor = errors.New("units: scale factor must be greater than zero")

// ScaleIngredient returns a copy of the ingredient with its quantity
// multiplied by factor. The unit is untouched.
func ScaleIngredient(ingredient models.Ingredient, factor float64) (models.Ingredient, error) {
	if factor <= 0 {
		return models.Ingredient{}, ErrNonPositiveFactor
	}
	out := ingredient
	out.Quantity = ingredient.Quantity * factor
	return out, nil
}

// ScaleRecipe returns a copy of the recipe with every ingredient quantity
// and the servings count scaled. Title, description, instructions, and
// prep/cook times are left alone.
func ScaleRecipe(recipe models.Recipe, factor float64) (models.Recipe, error) {
	if factor <= 0 {
		return models.Recipe{}, ErrNonPositiveFactor
	}

	out := recipe
	out.Ingredients = make([]models.Ingredient, len(recipe.Ingredients))
	for i, ingredient := range recipe.Ingredients {
		scaled, err := ScaleIngredient(ingredient, factor)
		if err != nil {
			return models.Recipe{}, err
		}
		out.Ingredients[i] = scaled
	}

	servings := int(math.Round(float64(recipe.Servings) * factor))
	if servings < 1 {
		servings = 1
	}
	out.Servings = servings
	return out, nil
}
