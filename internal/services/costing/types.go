package costing

import "fmt"

// UnitMismatchPolicy controls what happens when a quantity's unit sits in
// a different measurement category than the ingredient's base unit.
type UnitMismatchPolicy int

const (
	// MismatchFallback treats the quantity as if it were already expressed
	// in the ingredient's base unit. Recipe costing uses this: a data-entry
	// slip should produce a visible, plausible cost rather than an error
	// that blocks the whole recipe.
	MismatchFallback UnitMismatchPolicy = iota

	// MismatchReject refuses the conversion. Purchase registration uses
	// this: a purchase writes the ingredient's cost of record, and a wrong
	// unit there would silently corrupt every downstream figure.
	MismatchReject
)

func (p UnitMismatchPolicy) String() string {
	switch p {
	case MismatchFallback:
		return "fallback"
	case MismatchReject:
		return "reject"
	default:
		return "unknown"
	}
}

// UnitMismatchError is returned under MismatchReject when a unit cannot
// be converted to the ingredient's base unit.
type UnitMismatchError struct {
	IngredientID string
	FromUnit     string
	BaseUnit     string
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("unit %q cannot be converted to base unit %q for ingredient %s",
		e.FromUnit, e.BaseUnit, e.IngredientID)
}

// EmptyRecipeError is returned when a recipe has no ingredient lines and
// therefore no computable cost.
type EmptyRecipeError struct {
	RecipeID string
}

func (e *EmptyRecipeError) Error() string {
	return fmt.Sprintf("recipe %s has no ingredient lines", e.RecipeID)
}

// LineCost is the costed form of one recipe line.
type LineCost struct {
	IngredientID   string
	IngredientName string
	Quantity       float64
	Unit           string
	// BaseQuantity is the quantity expressed in the ingredient's base unit.
	// Under fallback it equals Quantity even though the units differ.
	BaseQuantity float64
	Cost         float64
	UsedFallback bool
}

// RecipeCost is the full cost breakdown of a recipe.
type RecipeCost struct {
	RecipeID   string
	Total      float64
	PerServing float64
	Lines      []LineCost
}

// AnyFallback reports whether any line was costed via the fallback.
func (c *RecipeCost) AnyFallback() bool {
	for _, line := range c.Lines {
		if line.UsedFallback {
			return true
		}
	}
	return false
}
