package models

import (
	"errors"
	"time"

	"github.com/crumbwork/crumbwork/internal/units"
)

// Recipe is a named set of ingredient lines yielding a number of servings.
// Cost is never stored on the recipe; it is recomputed from the lines on
// demand. Recipes soft-delete via Active.
type Recipe struct {
	ID          string
	Name        string
	Description string
	Servings    int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	Lines []*RecipeLine
}

// NewRecipe creates a recipe after validating its invariants.
func NewRecipe(id, name string, servings int) (*Recipe, error) {
	var errs []error

	if name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if servings < 1 {
		errs = append(errs, errors.New("servings must be at least 1"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Recipe{
		ID:       id,
		Name:     name,
		Servings: servings,
		Active:   true,
	}, nil
}

// RecipeLine ties a quantity of one ingredient to a recipe. The line unit
// may differ from the ingredient's base unit; it may even sit in a
// different measurement category, which the cost engine handles with an
// explicit fallback rather than an error.
type RecipeLine struct {
	ID           string
	RecipeID     string
	IngredientID string
	Quantity     float64
	Unit         string
	Note         string
	CreatedAt    time.Time

	// Joined fields
	Ingredient *Ingredient
}

// NewRecipeLine creates a recipe line after validating its invariants.
func NewRecipeLine(id, recipeID, ingredientID string, quantity float64, unit string) (*RecipeLine, error) {
	var errs []error

	if recipeID == "" {
		errs = append(errs, errors.New("recipe ID is required"))
	}
	if ingredientID == "" {
		errs = append(errs, errors.New("ingredient ID is required"))
	}
	if quantity <= 0 {
		errs = append(errs, errors.New("quantity must be positive"))
	}
	if !units.IsKnown(unit) {
		errs = append(errs, &units.UnknownUnitError{Unit: unit})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &RecipeLine{
		ID:           id,
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Quantity:     quantity,
		Unit:         unit,
	}, nil
}

// UnitMatchesIngredient reports whether the line's unit shares a
// measurement category with its ingredient's base unit. Requires the
// Ingredient join to be populated.
func (l *RecipeLine) UnitMatchesIngredient() bool {
	if l.Ingredient == nil {
		return false
	}
	return units.AreCompatible(l.Unit, l.Ingredient.BaseUnit)
}

// RecipeFilter narrows recipe list queries.
type RecipeFilter struct {
	Search        string
	IncludeHidden bool // include soft-deleted recipes
}

// RecipeList is a page of recipes.
type RecipeList struct {
	Recipes    []*Recipe
	Total      int
	Page       int
	TotalPages int
}
