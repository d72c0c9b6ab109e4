package pricing

import "errors"

var (
	// ErrProductHasNoRecipe means a cost refresh was requested for a
	// product that is not linked to a recipe.
	ErrProductHasNoRecipe = errors.New("product has no linked recipe")

	// ErrRecipeInactive refuses linking products to a soft-deleted recipe.
	ErrRecipeInactive = errors.New("recipe is inactive")
)

// RecipeLineInput describes one line of a recipe being created or edited.
type RecipeLineInput struct {
	IngredientID string
	Quantity     float64
	Unit         string
	Note         string
}

// CreateRecipeInput describes a new recipe.
type CreateRecipeInput struct {
	Name        string
	Description string
	Servings    int
	Lines       []RecipeLineInput
}

// CreateProductInput describes a new product. When RecipeID is set the
// base cost is computed from the recipe and MarkupPercent (or the
// configured default) derives the price; otherwise BaseCost and
// SuggestedPrice are taken as given.
type CreateProductInput struct {
	Name           string
	RecipeID       string
	MarkupPercent  *float64
	BaseCost       float64
	SuggestedPrice float64
	ImagePath      *string
}

// RefreshOutcome is the per-product result of a bulk cost refresh.
type RefreshOutcome struct {
	ProductID string
	Name      string
	OldCost   float64
	NewCost   float64
	NewPrice  float64
	Changed   bool
	Err       error
}

// RefreshSummary aggregates a bulk cost refresh.
type RefreshSummary struct {
	Outcomes []RefreshOutcome
}

// Refreshed returns how many products had their cached cost rewritten.
func (s *RefreshSummary) Refreshed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err == nil && o.Changed {
			n++
		}
	}
	return n
}

// Failed returns how many products could not be refreshed.
func (s *RefreshSummary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
