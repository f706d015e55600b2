package recipes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"mirepoix/internal/units"
	"mirepoix/models"
)

// IngredientInput is one ingredient line as submitted by a caller.
type IngredientInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes,omitempty"`
	Category string  `json:"category,omitempty"`
}

// InstructionInput is one preparation step as submitted by a caller.
type InstructionInput struct {
	Step            int    `json:"step"`
	Text            string `json:"text"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// RecipeInput is the write shape for creating or editing a recipe.
type RecipeInput struct {
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Ingredients  []IngredientInput  `json:"ingredients"`
	Instructions []InstructionInput `json:"instructions"`
	PrepMinutes  int                `json:"prep_minutes"`
	CookMinutes  int                `json:"cook_minutes"`
	Servings     int                `json:"servings"`
	SourceURL    string             `json:"source_url,omitempty"`
	Tags         []string           `json:"tags,omitempty"`
	Rating       *int               `json:"rating,omitempty"`
	FolderID     *uint              `json:"folder_id,omitempty"`
}

// Validate checks the whole input and reports every offending field.
func (in RecipeInput) Validate() error {
	var fields []FieldError

	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, FieldError{Field: "title", Reason: "must not be empty"})
	}
	if in.Servings < 1 {
		fields = append(fields, FieldError{Field: "servings", Reason: "must be at least 1"})
	}
	if in.PrepMinutes < 0 {
		fields = append(fields, FieldError{Field: "prep_minutes", Reason: "must not be negative"})
	}
	if in.CookMinutes < 0 {
		fields = append(fields, FieldError{Field: "cook_minutes", Reason: "must not be negative"})
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		fields = append(fields, FieldError{Field: "rating", Reason: "must be between 1 and 5"})
	}

	for i, ingredient := range in.Ingredients {
		if strings.TrimSpace(ingredient.Name) == "" {
			fields = append(fields, FieldError{
				Field:  fmt.Sprintf("ingredients[%d].name", i),
				Reason: "must not be empty",
			})
		}
		if ingredient.Quantity <= 0 {
			fields = append(fields, FieldError{
				Field:  fmt.Sprintf("ingredients[%d].quantity", i),
				Reason: "must be greater than zero",
			})
		}
		if _, ok := units.Parse(ingredient.Unit); !ok {
			fields = append(fields, FieldError{
				Field:  fmt.Sprintf("ingredients[%d].unit", i),
				Reason: fmt.Sprintf("unknown unit %q", ingredient.Unit),
			})
		}
	}

	seenSteps := make(map[int]bool, len(in.Instructions))
	for i, instruction := range in.Instructions {
		if strings.TrimSpace(instruction.Text) == "" {
			fields = append(fields, FieldError{
				Field:  fmt.Sprintf("instructions[%d].text", i),
				Reason: "must not be empty",
			})
		}
		if instruction.Step < 1 {
			fields = append(fields, FieldError{
				Field:  fmt.Sprintf("instructions[%d].step", i),
				Reason: "must be 1-indexed",
			})
		} else if seenSteps[instruction.Step] {
			fields = append(fields, FieldError{
				Field:  fmt.Sprintf("instructions[%d].step", i),
				Reason: fmt.Sprintf("duplicate step %d", instruction.Step),
			})
		}
		seenSteps[instruction.Step] = true
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// materialize converts a validated input into the value columns shared by
// heads and version rows. Units are stored in canonical spelling and every
// line receives a stable identifier.
func (in RecipeInput) materialize() ([]models.Ingredient, []models.Instruction) {
	ingredients := make([]models.Ingredient, len(in.Ingredients))
	for i, input := range in.Ingredients {
		unit := input.Unit
		if parsed, ok := units.Parse(input.Unit); ok {
			unit = string(parsed)
		}
		ingredients[i] = models.Ingredient{
			ID:       uuid.NewString(),
			Name:     strings.TrimSpace(input.Name),
			Quantity: input.Quantity,
			Unit:     unit,
			Notes:    input.Notes,
			Category: input.Category,
		}
	}

	instructions := make([]models.Instruction, len(in.Instructions))
	for i, input := range in.Instructions {
		instructions[i] = models.Instruction{
			ID:              uuid.NewString(),
			Step:            input.Step,
			Text:            strings.TrimSpace(input.Text),
			DurationMinutes: input.DurationMinutes,
			Notes:           input.Notes,
		}
	}

	return ingredients, instructions
}
