// Package costing computes recipe costs from ingredient unit costs and
// derives prices from costs. The engine is pure: it reads the model graph
// it is handed and never touches storage, which keeps every rule here
// testable without a database.
package costing

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/crumbwork/crumbwork/internal/models"
	"github.com/crumbwork/crumbwork/internal/units"
)

// Engine computes recipe costs under a configured mismatch policy.
type Engine struct {
	policy UnitMismatchPolicy
}

// NewEngine creates a cost engine with the given mismatch policy.
func NewEngine(policy UnitMismatchPolicy) *Engine {
	return &Engine{policy: policy}
}

// ConvertToBase converts a quantity in the given unit into an ingredient's
// base unit, applying the engine's mismatch policy when the categories
// differ. The bool reports whether the fallback was used.
func (e *Engine) ConvertToBase(quantity float64, unit string, ingredient *models.Ingredient) (float64, bool, error) {
	converted, err := units.Convert(quantity, unit, ingredient.BaseUnit)
	if err == nil {
		return converted, false, nil
	}

	var incompatible *units.IncompatibleUnitsError
	var unknown *units.UnknownUnitError
	if !errors.As(err, &incompatible) && !errors.As(err, &unknown) {
		return 0, false, err
	}

	if e.policy == MismatchReject {
		// A unit the tables don't know at all is not a category mismatch;
		// report it as-is so callers can distinguish a typo from a
		// weight/volume mix-up.
		if errors.As(err, &unknown) {
			return 0, false, err
		}
		return 0, false, &UnitMismatchError{
			IngredientID: ingredient.ID,
			FromUnit:     unit,
			BaseUnit:     ingredient.BaseUnit,
		}
	}

	// Fallback: read the quantity as base units. Deterministic and visible
	// in the line breakdown rather than silently zero.
	slog.Warn("unit mismatch, costing quantity as base units",
		"ingredient", ingredient.Name,
		"unit", unit,
		"base_unit", ingredient.BaseUnit,
	)
	return quantity, true, nil
}

// CostLine costs a single recipe line. The line's Ingredient join must be
// populated.
func (e *Engine) CostLine(line *models.RecipeLine) (LineCost, error) {
	if line.Ingredient == nil {
		return LineCost{}, fmt.Errorf("line %s has no ingredient loaded", line.ID)
	}

	baseQty, fellBack, err := e.ConvertToBase(line.Quantity, line.Unit, line.Ingredient)
	if err != nil {
		return LineCost{}, err
	}

	return LineCost{
		IngredientID:   line.IngredientID,
		IngredientName: line.Ingredient.Name,
		Quantity:       line.Quantity,
		Unit:           line.Unit,
		BaseQuantity:   baseQty,
		Cost:           baseQty * line.Ingredient.CostPerBaseUnit,
		UsedFallback:   fellBack,
	}, nil
}

// ComputeRecipeCost costs every line of a recipe and totals them. The
// recipe's Lines must be populated with their Ingredient joins. Per-serving
// cost divides by the recipe's servings.
func (e *Engine) ComputeRecipeCost(recipe *models.Recipe) (*RecipeCost, error) {
	if len(recipe.Lines) == 0 {
		return nil, &EmptyRecipeError{RecipeID: recipe.ID}
	}

	result := &RecipeCost{
		RecipeID: recipe.ID,
		Lines:    make([]LineCost, 0, len(recipe.Lines)),
	}

	for _, line := range recipe.Lines {
		lineCost, err := e.CostLine(line)
		if err != nil {
			return nil, fmt.Errorf("costing line for ingredient %s: %w", line.IngredientID, err)
		}
		result.Lines = append(result.Lines, lineCost)
		result.Total += lineCost.Cost
	}

	if recipe.Servings > 0 {
		result.PerServing = result.Total / float64(recipe.Servings)
	}

	return result, nil
}

// SuggestedPrice derives a price from a cost using a markup percentage.
func SuggestedPrice(cost, markupPercent float64) float64 {
	return cost * (1 + markupPercent/100)
}

// MarginRatio returns price/cost, the multiplier a refresh must preserve.
// A zero cost has no defined margin; the second return is false and the
// caller falls back to its default markup.
func MarginRatio(cost, price float64) (float64, bool) {
	if cost == 0 {
		return 0, false
	}
	return price / cost, true
}

// RepriceForNewCost returns the price that keeps the old margin ratio
// against a new cost. When the old cost was zero the margin is undefined
// and the default markup applies instead.
func RepriceForNewCost(oldCost, oldPrice, newCost, defaultMarkupPercent float64) float64 {
	if ratio, ok := MarginRatio(oldCost, oldPrice); ok {
		return newCost * ratio
	}
	return SuggestedPrice(newCost, defaultMarkupPercent)
}
